/* models.go
 * Contains the configuration and server structs for the webhook receiver
 * Authors: Zachary Bower
 */

package web

import (
	"tournament-bot/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	WebhookAuth string // value the match host must send in its Authorization header
}

// Server is the HTTP server that handles webhook requests
type Server struct {
	api         *api.API
	webhookAuth string
}
