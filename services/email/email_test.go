package emailsvc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/testutil"
)

func upgradeMessage() *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Name: "jane", Address: "jane@hustle.dev"}},
		Subject:      "Welcome to Premium",
		TemplateName: "upgrade",
		TemplateData: map[string]interface{}{"Username": "jane", "Tier": core.TierPremium},
	}
}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	tests := []struct {
		name     string
		msg      *core.EmailMessage
		wantSent bool
	}{
		{name: "templated", msg: upgradeMessage(), wantSent: true},
		{
			name:     "plain body",
			msg:      &core.EmailMessage{To: []mail.Address{{Address: "a@b.c"}}, Subject: "hi", BodyStr: "hello"},
			wantSent: true,
		},
		{name: "no recipients", msg: &core.EmailMessage{Subject: "hi", BodyStr: "hello"}},
		{name: "no content", msg: &core.EmailMessage{To: []mail.Address{{Address: "a@b.c"}}, Subject: "hi"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewConsoleServiceMock(testutil.NewConfig(), testutil.NewLogger())
			svc.SendMessages(tc.msg)

			sent := svc.SentMessages()
			if !tc.wantSent {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			assert.NotEmpty(t, sent[0].TextContent)
		})
	}
}

func TestConsoleService_Format(t *testing.T) {
	conf := testutil.NewConfig()
	svc := newConsoleService(conf, testutil.NewLogger())

	msg := upgradeMessage()
	require.NoError(t, msg.Render(conf))
	assert.Contains(t, msg.TextContent, "jane")
	assert.Contains(t, msg.HTMLContent, conf.AppName)

	body, err := svc.format(*msg)
	require.NoError(t, err)
	assert.Contains(t, body, "Subject: [Creative Hustle] Welcome to Premium")
	assert.Contains(t, body, `To: "jane" <jane@hustle.dev>`)
	assert.Contains(t, body, "text/html")
}

func TestSendgridService_Send(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "accepted", status: http.StatusAccepted, want: true},
		{name: "rejected", status: http.StatusUnauthorized, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var payload map[string]interface{}
			var auth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, endpoint, r.URL.Path)
				auth = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&payload)
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			conf := testutil.NewConfig()
			conf.SendgridApiKey = "SG.test"
			svc := newSendgridService(conf, testutil.NewLogger(), srv.URL)

			assert.Equal(t, tc.want, svc.sendMessage(upgradeMessage()))
			assert.Equal(t, "Bearer SG.test", auth)

			pers := payload["personalizations"].([]interface{})[0].(map[string]interface{})
			assert.Equal(t, "[Creative Hustle] Welcome to Premium", pers["subject"])
			assert.Len(t, payload["content"], 2)
		})
	}
}
