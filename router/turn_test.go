package router

import (
	"os"
	"reflect"
	"testing"
)

func TestTurnCredentials(t *testing.T) {
	os.Setenv("TURN_URLS", "turn:relay1.example.com:3478, turns:relay2.example.com:5349 ,")
	os.Setenv("TURN_USERNAME", "relay-user")
	os.Setenv("TURN_PASSWORD", "relay-pass")

	credentials := turnCredentials()

	want := []string{"turn:relay1.example.com:3478", "turns:relay2.example.com:5349"}
	if !reflect.DeepEqual(credentials.Urls, want) {
		t.Errorf("Expected urls %v, got %v", want, credentials.Urls)
	}
	if credentials.Username != "relay-user" {
		t.Errorf("Expected username relay-user, got %q", credentials.Username)
	}
	if credentials.Credential != "relay-pass" {
		t.Errorf("Expected credential relay-pass, got %q", credentials.Credential)
	}
}

func TestTurnCredentialsUnconfigured(t *testing.T) {
	os.Setenv("TURN_URLS", "")
	os.Setenv("TURN_USERNAME", "")
	os.Setenv("TURN_PASSWORD", "")

	credentials := turnCredentials()

	if len(credentials.Urls) != 0 {
		t.Errorf("Expected no urls, got %v", credentials.Urls)
	}
}
