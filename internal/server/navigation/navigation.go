// Package navigation builds the presentation model of the top bar, profile
// dropdown and sidebar shown to signed-in users. Open/closed state of the
// dropdown and sidebar belongs to the client and is not modelled here.
package navigation

import (
	"net/url"

	"github.com/dmitrijs2005/tuktask/internal/common"
)

const (
	Brand = "TukTask"

	// AvatarBaseURL renders initials for users without a profile image.
	AvatarBaseURL = "https://api.dicebear.com/7.x/initials/png"

	guestSeed        = "guest"
	defaultUserLabel = "User"
)

// Action kinds. ActionSignOut tells the client to end the session and go
// to CallbackURL.
const (
	ActionNone    = "none"
	ActionSignOut = "signout"
)

// User is the session view the navigation needs. All fields may be empty.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type Action struct {
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	CallbackURL string `json:"callbackUrl,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Menu struct {
	Brand   string   `json:"brand"`
	Profile Profile  `json:"profile"`
	Actions []Action `json:"actions"`
	Sidebar []Link   `json:"sidebar"`
}

// SidebarLinks are the sidebar entries in display order.
func SidebarLinks() []Link {
	return []Link{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "My Tasks", Href: "/dashboard/tasks"},
		{Label: "Create Task", Href: "/dashboard/task"},
		{Label: "Settings", Href: "/settings"},
	}
}

// DropdownActions are the profile dropdown entries in display order.
func DropdownActions() []Action {
	return []Action{
		{Label: "Profile", Kind: ActionNone},
		{Label: "Settings", Kind: ActionNone},
		{Label: "Logout", Kind: ActionSignOut, CallbackURL: common.LoginRoute},
	}
}

// AvatarURL returns the user's image, or an initials avatar seeded with
// the name (or "guest").
func AvatarURL(u *User) string {
	if u != nil && u.Image != "" {
		return u.Image
	}
	seed := guestSeed
	if u != nil && u.Name != "" {
		seed = u.Name
	}
	return AvatarBaseURL + "?seed=" + url.QueryEscape(seed)
}

// Build returns the menu for u; a nil user gets the guest rendering.
func Build(u *User) Menu {
	p := Profile{Name: defaultUserLabel, Avatar: AvatarURL(u)}
	if u != nil {
		if u.Name != "" {
			p.Name = u.Name
		}
		p.Email = u.Email
	}

	return Menu{
		Brand:   Brand,
		Profile: p,
		Actions: DropdownActions(),
		Sidebar: SidebarLinks(),
	}
}
