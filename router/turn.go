package router

import (
	"strings"

	"github.com/hamza-olgun/react-chat-app/config"
)

// TurnCredentials is the ICE server bundle handed to authenticated clients
// so they can traverse NATs the STUN defaults cannot.
type TurnCredentials struct {
	Urls       []string `json:"urls"`
	Username   string   `json:"username"`
	Credential string   `json:"credential"`
}

// turnCredentials assembles the relay credentials from the environment.
// TURN_URLS is a comma separated list; empty entries are dropped. With no
// urls configured the bundle is empty and clients fall back to STUN only.
func turnCredentials() TurnCredentials {
	urls := []string{}
	for _, url := range strings.Split(config.Config("TURN_URLS"), ",") {
		if url = strings.TrimSpace(url); url != "" {
			urls = append(urls, url)
		}
	}

	return TurnCredentials{
		Urls:       urls,
		Username:   config.Config("TURN_USERNAME"),
		Credential: config.Config("TURN_PASSWORD"),
	}
}
