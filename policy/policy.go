// Package policy decides whether the current principal may use a member-facing
// feature, and where to send them when they may not.
package policy

import (
	"fmt"

	"nagoyameshi/models"
)

type Kind int

const (
	Anonymous Kind = iota
	Member
	Administrator
)

func (k Kind) String() string {
	switch k {
	case Anonymous:
		return "anonymous"
	case Member:
		return "member"
	case Administrator:
		return "admin"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Principal is whoever is acting on the request. ID is a users.id for Member
// and an admins.id for Administrator; zero for Anonymous.
type Principal struct {
	Kind Kind
	ID   int64
}

func AnonymousPrincipal() Principal { return Principal{Kind: Anonymous} }
func MemberPrincipal(id int64) Principal { return Principal{Kind: Member, ID: id} }
func AdminPrincipal(id int64) Principal { return Principal{Kind: Administrator, ID: id} }
func (p Principal) IsMember() bool { return p.Kind == Member }
func (p Principal) IsAdministrator() bool { return p.Kind == Administrator }

type Access int

const (
	// Public features are open to anonymous visitors and members.
	Public Access = iota
	// Members requires a logged in user.
	Members
	// Premium requires an active premium_plan subscription.
	Premium
	// NonPremium is for members who are not subscribed yet (subscription signup).
	NonPremium
)

// Feature is a member-facing capability guarded by Decide.
type Feature struct {
	Name   string
	Access Access
	// Index is where an ownership failure sends the member back to.
	Index string
}

type Request struct {
	Feature Feature
	// Owned is set for edit/update/destroy on a review or reservation.
	Owned   bool
	OwnerID int64
}

type SubscriptionChecker interface {
	IsSubscribed(userID int64, plan string) (bool, error)
}

const (
	LoginPath              = "/login"
	AdminHomePath          = "/admin/home"
	SubscriptionCreatePath = "/subscription/create"
	UserPath               = "/user"

	MessageUnauthorized      = "不正なアクセスです。"
	MessageAlreadySubscribed = "すでに有料プランに登録されています。"
)

type Decision struct {
	Allow    bool
	Redirect string
	// Message is the flash error shown after the redirect, when there is one.
	Message string
}

func allow() Decision {
	return Decision{Allow: true}
}

func deny(redirect, message string) Decision {
	return Decision{Redirect: redirect, Message: message}
}

// Decide evaluates the gating rules in order, the first match wins:
// anonymous visitors go to the login page, administrators go to the admin home,
// members without the plan a feature needs go to the subscription page, and
// members touching someone else's record go back to the feature index.
func Decide(p Principal, req Request, checker SubscriptionChecker) (Decision, error) {
	f := req.Feature

	switch p.Kind {
	case Anonymous:
		if f.Access == Public {
			return allow(), nil
		}
		return deny(LoginPath, ""), nil
	case Administrator:
		return deny(AdminHomePath, ""), nil
	case Member:
	default:
		return Decision{}, fmt.Errorf("policy: unknown principal %s", p.Kind)
	}

	switch f.Access {
	case Premium, NonPremium:
		if checker == nil {
			return Decision{}, fmt.Errorf("policy: %s needs a subscription checker", f.Name)
		}
		subscribed, err := checker.IsSubscribed(p.ID, models.PLAN_PREMIUM)
		if err != nil {
			return Decision{}, fmt.Errorf("policy: subscription state for user %d: %w", p.ID, err)
		}
		if f.Access == Premium && !subscribed {
			return deny(SubscriptionCreatePath, ""), nil
		}
		if f.Access == NonPremium && subscribed {
			return deny(UserPath, MessageAlreadySubscribed), nil
		}
	}

	if req.Owned && req.OwnerID != p.ID {
		return deny(f.Index, MessageUnauthorized), nil
	}

	return allow(), nil
}
