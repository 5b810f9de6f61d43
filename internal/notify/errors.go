// AngelaMos | 2026
// errors.go

package notify

import (
	"errors"

	"github.com/rgrams-coder/aicmmlr/internal/client"
)

const NetworkMessage = "Network error. Please check your connection and try again."

// FromError turns a failed call into the notice the user sees: the server's
// message verbatim for HTTP errors, a retry hint for transport errors, and
// fallback otherwise.
func FromError(err error, fallback string) Notice {
	var httpErr *client.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return Notice{Kind: Error, Message: httpErr.Message}
	case errors.Is(err, client.ErrNetwork):
		return Notice{Kind: Network, Message: NetworkMessage}
	default:
		return Notice{Kind: Error, Message: fallback}
	}
}
