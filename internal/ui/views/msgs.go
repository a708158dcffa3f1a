package views

import "github.com/kgrigsby/taskden/internal/auth"

// BackToMenu returns control to the menu, optionally carrying a status
// line to display there.
type BackToMenu struct {
	Status  string
	IsError bool
}

// LoggedIn carries the identity produced by a successful login.
type LoggedIn struct {
	Identity *auth.Identity
}

// MenuSelection is emitted when the operator picks a menu item.
type MenuSelection struct {
	Action MenuAction
}
