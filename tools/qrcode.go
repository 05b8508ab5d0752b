package tools

import (
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// RestaurantQRCode renders a PNG QR code pointing at the public restaurant page.
func RestaurantQRCode(baseURL string, restaurantID int64) ([]byte, error) {
	url := baseURL + "/restaurants/" + strconv.FormatInt(restaurantID, 10)
	return qrcode.Encode(url, qrcode.Medium, qrSize)
}
