package saw_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/oas-tools/oasctl/internal/saw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiaguinho/gosoap"
)

type soapCall struct {
	operation string
	params    gosoap.ArrayParams
}

// fakeCaller records SOAP calls and replays canned response bodies per operation.
type fakeCaller struct {
	calls     []soapCall
	responses map[string]string
	err       error
}

func (f *fakeCaller) Call(m string, p gosoap.SoapParams) (*gosoap.Response, error) {
	ap, _ := p.(gosoap.ArrayParams)
	f.calls = append(f.calls, soapCall{operation: m, params: ap})
	if f.err != nil {
		return nil, f.err
	}
	return &gosoap.Response{Body: []byte(f.responses[m])}, nil
}

// param returns the value recorded for the named parameter of the last call.
func (f *fakeCaller) param(t *testing.T, name string) interface{} {
	t.Helper()

	require.NotEmpty(t, f.calls, "a SOAP call should have been made")
	for _, p := range f.calls[len(f.calls)-1].params {
		if p[0] == name {
			return p[1]
		}
	}
	t.Fatalf("parameter %q was not sent", name)
	return nil
}

func TestLogon(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body    string
		callErr error

		want    string
		wantErr bool
	}{
		"Valid session":   {body: "<logonResult><sessionID>sessionabc123</sessionID></logonResult>", want: "sessionabc123"},
		"Call failure":    {callErr: errors.New("connection refused"), wantErr: true},
		"Malformed reply": {body: "<logonResult><sessionID>", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := &fakeCaller{responses: map[string]string{"logon": tc.body}, err: tc.callErr}
			c := saw.NewWithCaller(slog.Default(), f)

			got, err := c.Logon("admin", "secret")
			if tc.wantErr {
				require.Error(t, err, "Logon should return an error")
				return
			}
			require.NoError(t, err, "Logon should not return an error")
			require.Equal(t, tc.want, got, "Logon should return the session ID from the response")

			assert.Equal(t, "admin", f.param(t, "name"), "Logon should send the username")
			assert.Equal(t, "secret", f.param(t, "password"), "Logon should send the password")
		})
	}
}

func TestGetSubItems(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body    string
		callErr error

		want    []saw.ItemInfo
		wantErr bool
	}{
		"Folder with items": {
			body: `<getSubItemsResult>
				<itemInfo><path>/shared/Sales</path><type>Folder</type><caption>Sales</caption><signature>fold1</signature></itemInfo>
				<itemInfo><path>/shared/Daily Alert</path><type>Object</type><caption>Daily Alert</caption><signature>coibot1</signature></itemInfo>
			</getSubItemsResult>`,
			want: []saw.ItemInfo{
				{Path: "/shared/Sales", Type: "Folder", Caption: "Sales", Signature: "fold1"},
				{Path: "/shared/Daily Alert", Type: "Object", Caption: "Daily Alert", Signature: "coibot1"},
			},
		},
		"Empty folder": {body: "<getSubItemsResult></getSubItemsResult>", want: nil},
		"Call failure": {callErr: errors.New("access denied"), wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := &fakeCaller{responses: map[string]string{"getSubItems": tc.body}, err: tc.callErr}
			c := saw.NewWithCaller(slog.Default(), f)

			got, err := c.GetSubItems("/shared", "session1")
			if tc.wantErr {
				require.Error(t, err, "GetSubItems should return an error")
				return
			}
			require.NoError(t, err, "GetSubItems should not return an error")
			require.Equal(t, tc.want, got, "GetSubItems should return the listed items")

			assert.Equal(t, "/shared", f.param(t, "path"), "GetSubItems should list the requested folder")
			assert.Equal(t, "session1", f.param(t, "sessionID"), "GetSubItems should send the session ID")
		})
	}
}

func TestReadObject(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body    string
		callErr error

		want    string
		wantErr bool
	}{
		"Object as text": {
			body: `<readObjectsResult><object><catalogObject>&lt;saw:ibot/&gt;</catalogObject></object></readObjectsResult>`,
			want: "<saw:ibot/>",
		},
		"Remote error reported per object": {
			body:    `<readObjectsResult><object><errorInfo><errorCode>OBI-1234</errorCode><message>no such path</message></errorInfo></object></readObjectsResult>`,
			wantErr: true,
		},
		"No object returned": {body: "<readObjectsResult></readObjectsResult>", wantErr: true},
		"Call failure":       {callErr: errors.New("boom"), wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := &fakeCaller{responses: map[string]string{"readObjects": tc.body}, err: tc.callErr}
			c := saw.NewWithCaller(slog.Default(), f)

			got, err := c.ReadObject("/shared/Daily Alert", "session1")
			if tc.wantErr {
				require.Error(t, err, "ReadObject should return an error")
				return
			}
			require.NoError(t, err, "ReadObject should not return an error")
			assert.Equal(t, tc.want, got, "ReadObject should return the object XML")
		})
	}
}

func TestAgentStatus(t *testing.T) {
	t.Parallel()

	f := &fakeCaller{responses: map[string]string{"getIBotStatus": `<getIBotStatusResult>
		<lastRun>2024-05-01T06:00:00</lastRun>
		<nextRun>2024-05-02T06:00:00</nextRun>
		<lastRunStatus>Completed</lastRunStatus>
		<priority>Normal</priority>
		<agentEnabled>true</agentEnabled>
		<subscribed>false</subscribed>
		<specificRecipient>true</specificRecipient>
	</getIBotStatusResult>`}}
	c := saw.NewWithCaller(slog.Default(), f)

	got, err := c.AgentStatus("/shared/Daily Alert", "session1")
	require.NoError(t, err, "AgentStatus should not return an error")

	want := saw.AgentStatus{
		LastRun:           "2024-05-01T06:00:00",
		NextRun:           "2024-05-02T06:00:00",
		LastRunStatus:     "Completed",
		Priority:          "Normal",
		AgentEnabled:      true,
		Subscribed:        false,
		SpecificRecipient: true,
	}
	assert.Equal(t, want, got, "AgentStatus should decode every status field")
}

func TestEnableAgent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		enable bool

		want string
	}{
		"Enable":  {enable: true, want: "true"},
		"Disable": {enable: false, want: "false"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := &fakeCaller{responses: map[string]string{}}
			c := saw.NewWithCaller(slog.Default(), f)

			err := c.EnableAgent("/shared/Daily Alert", tc.enable, "session1")
			require.NoError(t, err, "EnableAgent should not return an error")

			require.Len(t, f.calls, 1, "EnableAgent should issue exactly one call")
			assert.Equal(t, "enableIBot", f.calls[0].operation, "EnableAgent should call enableIBot")
			assert.Equal(t, tc.want, f.param(t, "enable"), "EnableAgent should send the enable flag")
		})
	}
}

func TestExportItem(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body string

		want    []byte
		wantErr bool
	}{
		"Valid archive":  {body: "<copyItem2Result>Y2F0YWxvZy1hcmNoaXZl</copyItem2Result>", want: []byte("catalog-archive")},
		"Invalid base64": {body: "<copyItem2Result>not base64!</copyItem2Result>", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := &fakeCaller{responses: map[string]string{"copyItem2": tc.body}}
			c := saw.NewWithCaller(slog.Default(), f)

			got, err := c.ExportItem("/shared/Daily Alert", "session1")
			if tc.wantErr {
				require.Error(t, err, "ExportItem should return an error")
				return
			}
			require.NoError(t, err, "ExportItem should not return an error")
			assert.Equal(t, tc.want, got, "ExportItem should return the decoded archive")
		})
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	f := &fakeCaller{responses: map[string]string{"logon": "<logonResult><sessionID>s1</sessionID></logonResult>"}}
	c := saw.NewWithCaller(slog.Default(), f)

	s, err := c.Login("admin", "secret")
	require.NoError(t, err, "Login should not return an error")
	require.Equal(t, "s1", s.ID(), "Session should carry the remote session ID")

	require.NoError(t, s.Close(), "Close should not return an error")
	require.NoError(t, s.Close(), "second Close should be a no-op")

	var logoffs int
	for _, call := range f.calls {
		if call.operation == "logoff" {
			logoffs++
		}
	}
	assert.Equal(t, 1, logoffs, "Close should log off exactly once")
}

func TestWSDL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg saw.Config

		want string
	}{
		"HTTP":  {cfg: saw.Config{Host: "bi.example.com", Port: 9502}, want: "http://bi.example.com:9502/analytics-ws/saw.dll/wsdl/v12"},
		"HTTPS": {cfg: saw.Config{Host: "bi.example.com", Port: 443, SSL: true}, want: "https://bi.example.com:443/analytics-ws/saw.dll/wsdl/v12"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.cfg.WSDL(), "WSDL should build the expected URL")
		})
	}
}
