package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"nagoyameshi/tools"
)

var registerOnce sync.Once

// RegisterValidators adds the custom tags used by the form structs to gin's
// validator. Field errors are keyed by the form name of the field.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("postal_code", stringRule(tools.ValidatePostalCode))
		_ = v.RegisterValidation("katakana", stringRule(tools.ValidateKatakana))
		_ = v.RegisterValidation("hhmm", stringRule(tools.ValidateClock))
		_ = v.RegisterValidation("ymd", stringRule(tools.ValidateDate))
		_ = v.RegisterValidation("birthday", stringRule(tools.ValidateBirthday))
		_ = v.RegisterValidation("phone_jp", stringRule(func(s string) bool {
			return tools.CheckPhoneNumber(s) == ""
		}))
		v.RegisterStructValidation(validateRestaurantForm, RestaurantForm{})
	})
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}
}

// validateRestaurantForm checks the rules that span two fields.
func validateRestaurantForm(sl validator.StructLevel) {
	f := sl.Current().Interface().(RestaurantForm)
	if f.LowestPrice != nil && f.HighestPrice != nil && *f.LowestPrice > *f.HighestPrice {
		sl.ReportError(f.LowestPrice, "lowest_price", "LowestPrice", "lte_highest", "")
	}
	if tools.ValidateClock(f.OpeningTime) && tools.ValidateClock(f.ClosingTime) &&
		!tools.ClockBefore(f.OpeningTime, f.ClosingTime) {
		sl.ReportError(f.OpeningTime, "opening_time", "OpeningTime", "before_closing", "")
	}
}

var fieldLabels = map[string]string{
	"name":                  "名前",
	"kana":                  "フリガナ",
	"email":                 "メールアドレス",
	"password":              "パスワード",
	"password_confirmation": "確認用パスワード",
	"postal_code":           "郵便番号",
	"address":               "住所",
	"phone_number":          "電話番号",
	"birthday":              "誕生日",
	"occupation":            "職業",
	"image":                 "画像",
	"description":           "説明",
	"lowest_price":          "最低価格",
	"highest_price":         "最高価格",
	"opening_time":          "開店時間",
	"closing_time":          "閉店時間",
	"seating_capacity":      "座席数",
	"score":                 "評価",
	"content":               "内容",
	"reservation_date":      "予約日",
	"reservation_time":      "時間",
	"number_of_people":      "人数",
	"paymentMethodId":       "支払い方法",
	"representative":        "代表者",
	"establishment_date":    "設立",
	"capital":               "資本金",
	"business":              "事業内容",
	"number_of_employees":   "従業員数",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// fieldErrors turns a binding error into field -> message. Errors that are not
// validation failures (a malformed number, a broken body) land under "form".
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "入力内容が正しくありません。"
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	l := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%sを入力してください。", l)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%sは%s文字以内で入力してください。", l, fe.Param())
		}
		return fmt.Sprintf("%sには%s以下の値を指定してください。", l, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%sは%s文字以上で入力してください。", l, fe.Param())
		}
		return fmt.Sprintf("%sには%s以上の値を指定してください。", l, fe.Param())
	case "email":
		return fmt.Sprintf("%sには有効なメールアドレスを指定してください。", l)
	case "eqfield":
		return fmt.Sprintf("%sが一致しません。", l)
	case "postal_code":
		return fmt.Sprintf("%sは7桁の数字で入力してください。", l)
	case "katakana":
		return fmt.Sprintf("%sはカタカナで入力してください。", l)
	case "hhmm":
		return fmt.Sprintf("%sはHH:MM形式で入力してください。", l)
	case "ymd":
		return fmt.Sprintf("%sはYYYY-MM-DD形式で入力してください。", l)
	case "birthday":
		return fmt.Sprintf("%sは8桁の数字で入力してください。", l)
	case "phone_jp":
		if s, ok := fe.Value().(string); ok {
			if msg := tools.CheckPhoneNumber(s); msg != "" {
				return msg
			}
		}
		return tools.PhoneErrFormat
	case "lte_highest":
		return "最低価格は最高価格以下で入力してください。"
	case "before_closing":
		return "開店時間は閉店時間より前に設定してください。"
	}
	return fmt.Sprintf("%sの値が正しくありません。", l)
}
