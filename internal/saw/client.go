// Package saw provides typed access to the Oracle Analytics (OBIEE) SOAP web
// services consumed by oasctl: SAWSessionService, WebCatalogService and
// IBotService. The SOAP protocol itself is delegated to gosoap; this package
// only shapes requests and decodes responses.
package saw

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tiaguinho/gosoap"
)

// Config describes the server a client connects to.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	SSL      bool
}

// WSDL returns the service description URL for the configured server.
func (c Config) WSDL() string {
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d/analytics-ws/saw.dll/wsdl/v12", scheme, c.Host, c.Port)
}

// caller is the subset of the gosoap client used by Client.
type caller interface {
	Call(m string, p gosoap.SoapParams) (*gosoap.Response, error)
}

// Client wraps the remote operations used by the commands.
// All calls are synchronous and blocking.
type Client struct {
	soap caller
	log  *slog.Logger
}

// New creates a client for the server described by cfg. The WSDL is fetched
// and parsed by the SOAP library when the client is created.
func New(l *slog.Logger, cfg Config) (*Client, error) {
	wsdl := cfg.WSDL()
	l.Debug("Initializing SOAP client", "wsdl", wsdl)

	soap, err := gosoap.SoapClient(wsdl, &http.Client{Timeout: 5 * time.Minute})
	if err != nil {
		return nil, fmt.Errorf("could not initialize SOAP client for %s: %w", wsdl, err)
	}
	return &Client{soap: soap, log: l}, nil
}

// Logon authenticates against SAWSessionService and returns a session ID.
func (c *Client) Logon(username, password string) (string, error) {
	res, err := c.call("logon", gosoap.ArrayParams{
		{"name", username},
		{"password", password},
	})
	if err != nil {
		return "", err
	}

	var r logonResult
	if err := res.Unmarshal(&r); err != nil {
		return "", fmt.Errorf("could not decode logon response: %w", err)
	}
	return r.SessionID, nil
}

// Logoff terminates the given session.
func (c *Client) Logoff(sessionID string) error {
	_, err := c.call("logoff", gosoap.ArrayParams{
		{"sessionID", sessionID},
	})
	return err
}

// GetSubItems lists the immediate children of a catalog folder.
func (c *Client) GetSubItems(folder, sessionID string) ([]ItemInfo, error) {
	res, err := c.call("getSubItems", gosoap.ArrayParams{
		{"path", folder},
		{"mask", "*"},
		{"resolveLinks", "false"},
		{"sessionID", sessionID},
	})
	if err != nil {
		return nil, err
	}

	var r subItemsResult
	if err := res.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("could not decode getSubItems response for %s: %w", folder, err)
	}
	return r.Items, nil
}

// ReadObject returns the XML definition of the catalog object at path.
func (c *Client) ReadObject(path, sessionID string) (string, error) {
	res, err := c.call("readObjects", gosoap.ArrayParams{
		{"paths", path},
		{"resolveLinks", "false"},
		{"errorMode", "ErrorCodeAndText"},
		{"returnOptions", "ObjectAsText"},
		{"sessionID", sessionID},
	})
	if err != nil {
		return "", err
	}

	var r readObjectsResult
	if err := res.Unmarshal(&r); err != nil {
		return "", fmt.Errorf("could not decode readObjects response for %s: %w", path, err)
	}
	if len(r.Objects) == 0 {
		return "", fmt.Errorf("no catalog object returned for %s", path)
	}
	obj := r.Objects[0]
	if obj.ErrorInfo.ErrorCode != "" {
		return "", fmt.Errorf("could not read %s: %s (%s)", path, obj.ErrorInfo.Message, obj.ErrorInfo.ErrorCode)
	}
	return obj.CatalogObject, nil
}

// AgentStatus returns the scheduler status of the agent at path.
func (c *Client) AgentStatus(path, sessionID string) (AgentStatus, error) {
	res, err := c.call("getIBotStatus", gosoap.ArrayParams{
		{"path", path},
		{"sessionID", sessionID},
	})
	if err != nil {
		return AgentStatus{}, err
	}

	var status AgentStatus
	if err := res.Unmarshal(&status); err != nil {
		return AgentStatus{}, fmt.Errorf("could not decode getIBotStatus response for %s: %w", path, err)
	}
	return status, nil
}

// EnableAgent enables or disables the agent at path.
func (c *Client) EnableAgent(path string, enable bool, sessionID string) error {
	_, err := c.call("enableIBot", gosoap.ArrayParams{
		{"path", path},
		{"enable", strconv.FormatBool(enable)},
		{"sessionID", sessionID},
	})
	return err
}

// WriteAgent stores objectXML as the agent definition at path, replacing the
// existing definition.
func (c *Client) WriteAgent(objectXML, path, sessionID string) error {
	_, err := c.call("writeIBot", gosoap.ArrayParams{
		{"object", gosoap.Params{"catalogObject": objectXML}},
		{"path", path},
		{"resolveLinks", "false"},
		{"allowOverwrite", "true"},
		{"sessionID", sessionID},
	})
	return err
}

// ExportItem returns the catalog archive form of the object at path, suitable
// for writing to a .catalog backup file.
func (c *Client) ExportItem(path, sessionID string) ([]byte, error) {
	res, err := c.call("copyItem2", gosoap.ArrayParams{
		{"path", path},
		{"resolveLinks", "false"},
		{"exportSecurity", "true"},
		{"exportTimestamps", "true"},
		{"recursive", "false"},
		{"sessionID", sessionID},
	})
	if err != nil {
		return nil, err
	}

	var r exportResult
	if err := res.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("could not decode copyItem2 response for %s: %w", path, err)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(r.Data))
	if err != nil {
		return nil, fmt.Errorf("could not decode catalog archive for %s: %w", path, err)
	}
	return data, nil
}

func (c *Client) call(operation string, params gosoap.SoapParams) (*gosoap.Response, error) {
	c.log.Debug("Calling remote operation", "operation", operation)
	res, err := c.soap.Call(operation, params)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", operation, err)
	}
	return res, nil
}
