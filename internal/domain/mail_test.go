package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The mail worker unmarshals Data into a plain map and feeds it to the
// HTML template, so the JSON key casing is the template contract.
func TestMailMessage_NewAccountTemplateKeys(t *testing.T) {
	msg := MailMessage{
		Type: "create_user",
		To:   "noa@example.com",
		Data: NewAccountMailData{FullName: "Noa Cohen", Username: "noac3", Password: "pw"},
	}

	raw, err := json.Marshal(msg)
	assert.NoError(t, err)

	var decoded MailMessage
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "create_user", decoded.Type)

	data, ok := decoded.Data.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Noa Cohen", data["fullName"])
	assert.Equal(t, "noac3", data["username"])
	assert.Equal(t, "pw", data["password"])
}
