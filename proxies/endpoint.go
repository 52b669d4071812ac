package proxies

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
)

// Unwrap define how a relay packs the upstream body
type Unwrap int

const (
	// UnwrapNone relay returns the upstream body verbatim
	UnwrapNone Unwrap = iota
	// UnwrapContents relay wraps the upstream body as a json string in {"contents": "..."}
	UnwrapContents
	// UnwrapAuto detect the contents envelope per response
	UnwrapAuto
)

var unwrapNames = map[Unwrap]string{
	UnwrapNone:     "none",
	UnwrapContents: "contents",
	UnwrapAuto:     "auto",
}

// String return unwrap name
func (u Unwrap) String() string {
	name, found := unwrapNames[u]
	if !found {
		return fmt.Sprintf("unwrap(%d)", int(u))
	}

	return name
}

// ParseUnwrap parse unwrap name, empty means none
func ParseUnwrap(name string) (Unwrap, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return UnwrapNone, nil
	}

	for unwrap, text := range unwrapNames {
		if text == name {
			return unwrap, nil
		}
	}

	return UnwrapNone, fmt.Errorf("unknown unwrap strategy %q", name)
}

// Endpoint define a relay that forwards requests to a target url
type Endpoint struct {
	Name   string
	Base   string
	Unwrap Unwrap
}

// Defaults relays in their default try order
var Defaults = []Endpoint{
	{Name: "allorigins-raw", Base: "https://api.allorigins.win/raw?url=", Unwrap: UnwrapNone},
	{Name: "allorigins-get", Base: "https://api.allorigins.win/get?url=", Unwrap: UnwrapContents},
	{Name: "corsproxy", Base: "https://corsproxy.io/?", Unwrap: UnwrapNone},
	{Name: "cors-anywhere", Base: "https://cors-anywhere.herokuapp.com/", Unwrap: UnwrapNone},
}

// URL build the relay url for target. An empty base requests the target directly.
func (e Endpoint) URL(target string) string {
	if e.Base == "" {
		return target
	}

	return e.Base + url.QueryEscape(target)
}

// Open remove the relay envelope from body
func (e Endpoint) Open(body []byte) ([]byte, error) {
	switch e.Unwrap {
	case UnwrapNone:
		return body, nil
	case UnwrapContents:
		return contents(body)
	case UnwrapAuto:
		unwrapped, err := contents(body)
		if err != nil {
			return body, nil
		}
		return unwrapped, nil
	default:
		return nil, fmt.Errorf("endpoint %s has unknown unwrap strategy %s", e.Name, e.Unwrap)
	}
}

var errNoContents = errors.New("envelope has no contents")

func contents(body []byte) ([]byte, error) {
	var envelope struct {
		Contents *string `json:"contents"`
	}

	err := sonic.Unmarshal(body, &envelope)
	if err != nil {
		return nil, err
	}

	if envelope.Contents == nil || strings.TrimSpace(*envelope.Contents) == "" {
		return nil, errNoContents
	}

	return []byte(*envelope.Contents), nil
}
