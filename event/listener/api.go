package listener

import (
	"log"

	"github.com/hamza-olgun/react-chat-app/event"
)

var (
	ApiChannel = make(chan event.EventChannelData)
)

// Api drains the api queue. Downstream consumers (analytics, moderation)
// hook in here; the relay itself only audits.
func Api() {
	for data := range ApiChannel {
		log.Printf("api event: %s %s", data.Action, string(data.Data))
	}
}
