package history

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Event is the polymorphic inbound shape. Exactly one variant is expected:
//
//   - Gateway: path + httpMethod, optional body and queryStringParameters.
//   - Resolver: info.fieldName/parentTypeName + arguments.
//
// Path is a pointer so an event that carries "path": "" is still recognized
// as the gateway variant, matching how the field-presence check behaves on
// the wire.
type Event struct {
	Path        *string           `json:"path,omitempty"`
	HTTPMethod  string            `json:"httpMethod,omitempty"`
	Body        json.RawMessage   `json:"body,omitempty"`
	QueryParams map[string]string `json:"queryStringParameters,omitempty"`

	Info      *ResolverInfo  `json:"info,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ResolverInfo mirrors the GraphQL resolver metadata block.
type ResolverInfo struct {
	FieldName      string `json:"fieldName"`
	ParentTypeName string `json:"parentTypeName"`
}

// ParseEvent decodes a raw inbound payload into an Event.
func ParseEvent(raw []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, NewValidationError("Unsupported event format")
	}
	return &ev, nil
}

// IsGateway reports whether the event carries the gateway discriminator.
func (e *Event) IsGateway() bool {
	return e.Path != nil
}

// IsResolver reports whether the event carries the resolver discriminator.
func (e *Event) IsResolver() bool {
	return e.Info != nil && e.Info.FieldName != ""
}

// Method resolves the abstract HTTP-style method for dispatch. Resolver
// events map Mutation to POST and Query to GET, case-insensitively. An
// empty string means the method could not be resolved.
func (e *Event) Method() string {
	if e.HTTPMethod != "" {
		return strings.ToUpper(e.HTTPMethod)
	}
	if e.Info != nil {
		switch strings.ToUpper(e.Info.ParentTypeName) {
		case "MUTATION":
			return "POST"
		case "QUERY":
			return "GET"
		}
	}
	return ""
}

var idPattern = regexp.MustCompile(`/([^/]+)$`)

// ExtractID pulls the identifier from the tail segment of a gateway path.
func ExtractID(path string) (string, error) {
	if path == "" {
		return "", NewValidationError("Empty path provided")
	}
	m := idPattern.FindStringSubmatch(path)
	if m == nil {
		return "", NewValidationError("ID not found in request path")
	}
	return m[1], nil
}

// CreateInput normalizes the event into the write operation's inputs. The
// payload is returned undecoded beyond JSON so the create validator decides
// whether its shape is acceptable.
//
// Gateway events take the identifier from the path tail and the payload from
// the body (JSON-decoded when it arrives as a string). Resolver events take
// the identifier from arguments.id and the payload from arguments.data; the
// field-name suffix is deliberately not used as an identifier source.
func (e *Event) CreateInput() (string, any, error) {
	switch {
	case e.IsGateway():
		id, err := ExtractID(*e.Path)
		if err != nil {
			return "", nil, err
		}
		payload, err := decodeBody(e.Body)
		if err != nil {
			return "", nil, err
		}
		return id, payload, nil
	case e.IsResolver():
		id, err := e.resolverID()
		if err != nil {
			return "", nil, err
		}
		return id, e.Arguments["data"], nil
	default:
		return "", nil, NewValidationError("Unsupported event format")
	}
}

// ReadInput normalizes the event into the read operation's inputs. The
// returned params hold the raw start/end strings for the validator.
func (e *Event) ReadInput() (string, map[string]string, error) {
	switch {
	case e.IsGateway():
		id, err := ExtractID(*e.Path)
		if err != nil {
			return "", nil, err
		}
		params := e.QueryParams
		if params == nil {
			params = map[string]string{}
		}
		return id, params, nil
	case e.IsResolver():
		id, err := e.resolverID()
		if err != nil {
			return "", nil, err
		}
		params := map[string]string{}
		for k, v := range e.Arguments {
			if k == "id" {
				continue
			}
			if s, ok := v.(string); ok {
				params[k] = s
			}
		}
		return id, params, nil
	default:
		return "", nil, NewValidationError("Unsupported event format")
	}
}

func (e *Event) resolverID() (string, error) {
	id, _ := e.Arguments["id"].(string)
	if id == "" {
		return "", NewValidationError("ID not found in request arguments")
	}
	return id, nil
}

// decodeBody turns the raw body into a payload value. A string body is
// decoded as embedded JSON; any other body is used as decoded; a missing
// body yields nil. Shape enforcement belongs to the create validator.
func decodeBody(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, NewValidationError("Invalid JSON in request body")
		}
		if strings.TrimSpace(inner) == "" {
			return nil, nil
		}
		var payload any
		if err := json.Unmarshal([]byte(inner), &payload); err != nil {
			return nil, NewValidationError("Invalid JSON in request body")
		}
		return payload, nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, NewValidationError("Invalid JSON in request body")
	}
	return payload, nil
}
