package messages

import "github.com/fragmede/shopauth/internal/api"

// Navigation messages.
type (
	// NavigateMsg asks the app to show the screen for Path. Profile is set
	// when the navigation follows a successful login.
	NavigateMsg struct {
		Path    string
		Profile *api.Profile
	}

	LogoutMsg struct{}
)

// Session messages.
type (
	SessionRestoredMsg struct {
		Profile *api.Profile
	}

	// RestoreFailedMsg means there was no usable stored session. Err is nil
	// when nothing was stored.
	RestoreFailedMsg struct {
		Err error
	}

	// LoginFailedMsg is sent when a login attempt did not end in navigation.
	LoginFailedMsg struct {
		Err error
	}

	ProfileLoadedMsg struct {
		Profile *api.Profile
		Err     error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)

// SessionExpiredMsg is sent by the background monitor when the token's
// expiry passes.
type SessionExpiredMsg struct{}
