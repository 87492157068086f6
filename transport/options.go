// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/idna"
)

// Options describes one HTTP request to be sent by a Transport.
type Options struct {
	// Host is the host name or IP address of the server, without port
	// and without IPv6 brackets.
	Host string `json:"host"`

	// Port is the TCP port of the server.
	Port int `json:"port"`

	// Path is the request target: the escaped path plus the query
	// string, if any.
	Path string `json:"path"`

	// Method is the HTTP request method.
	Method string `json:"method"`

	// Headers holds the request headers keyed by lower-case name. The
	// "host" entry, if present, overrides the Host header.
	Headers map[string]string `json:"headers"`

	// TLS holds TLS settings used when Secure is true.
	TLS *TLSOptions `json:"tls,omitempty"`

	// Secure is true for an https request. It travels separately from
	// the JSON form, as the first argument to the sync helper.
	Secure bool `json:"-"`
}

// TLSOptions holds the TLS settings of a secure request.
type TLSOptions struct {
	// CA names a PEM file of root certificates to trust instead of the
	// system pool.
	CA string `json:"ca,omitempty" yaml:"ca"`

	// Cert and Key name the PEM files of a client certificate.
	Cert string `json:"cert,omitempty" yaml:"cert"`
	Key  string `json:"key,omitempty" yaml:"key"`

	// Ciphers lists the permitted cipher suites by their IANA names,
	// as reported by crypto/tls.CipherSuiteName. Empty means the Go
	// defaults.
	Ciphers []string `json:"ciphers,omitempty" yaml:"ciphers"`

	// ServerName overrides the name used for SNI and verification.
	ServerName string `json:"servername,omitempty" yaml:"servername"`

	// RejectUnauthorized controls certificate verification. Nil means
	// verify.
	RejectUnauthorized *bool `json:"rejectUnauthorized,omitempty" yaml:"rejectUnauthorized"`
}

// ForURL returns the Options for sending a request with the given
// method and headers to an absolute http or https URL.
//
// A missing port defaults to 80 or 443, and an empty path to "/".
func ForURL(u *url.URL, method string, headers map[string]string) (*Options, error) {
	var secure bool
	switch u.Scheme {
	case "https":
		secure = true
	case "http":
	default:
		return nil, fmt.Errorf("xhr/transport: unsupported scheme %q", u.Scheme)
	}

	port := 80
	if secure {
		port = 443
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("xhr/transport: invalid port %q", p)
		}
		port = n
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return &Options{
		Host:    u.Hostname(),
		Port:    port,
		Path:    path,
		Method:  method,
		Headers: headers,
		Secure:  secure,
	}, nil
}

// DefaultPort reports whether o.Port is the default port for its
// scheme.
func (o *Options) DefaultPort() bool {
	return (o.Secure && o.Port == 443) || (!o.Secure && o.Port == 80)
}

// HostHeader returns the value to send as the Host header: the host
// converted to its ASCII (punycode) form, followed by the port unless
// it is the scheme default.
func (o *Options) HostHeader() (string, error) {
	host, err := idna.Lookup.ToASCII(o.Host)
	if err != nil {
		// IP literals and names with underscores fail strict lookup
		// rules but are still sendable.
		host = o.Host
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if !o.DefaultPort() {
		host += ":" + strconv.Itoa(o.Port)
	}
	if !httpguts.ValidHostHeader(host) {
		return "", fmt.Errorf("xhr/transport: invalid host %q", o.Host)
	}
	return host, nil
}

// URL returns the absolute URL the options address.
func (o *Options) URL() string {
	scheme := "http"
	if o.Secure {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(o.Host, strconv.Itoa(o.Port)) + o.Path
}

// Config builds a crypto/tls configuration from the options. A nil
// receiver yields a configuration with Go defaults.
func (t *TLSOptions) Config() (*tls.Config, error) {
	cfg := &tls.Config{}
	if t == nil {
		return cfg, nil
	}

	cfg.ServerName = t.ServerName
	if t.RejectUnauthorized != nil && !*t.RejectUnauthorized {
		cfg.InsecureSkipVerify = true
	}

	if t.CA != "" {
		pem, err := os.ReadFile(t.CA)
		if err != nil {
			return nil, fmt.Errorf("xhr/transport: reading CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("xhr/transport: no certificates in %s", t.CA)
		}
		cfg.RootCAs = pool
	}

	if t.Cert != "" || t.Key != "" {
		cert, err := tls.LoadX509KeyPair(t.Cert, t.Key)
		if err != nil {
			return nil, fmt.Errorf("xhr/transport: loading client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if len(t.Ciphers) > 0 {
		byName := make(map[string]uint16)
		for _, cs := range tls.CipherSuites() {
			byName[cs.Name] = cs.ID
		}
		for _, cs := range tls.InsecureCipherSuites() {
			byName[cs.Name] = cs.ID
		}
		for _, name := range t.Ciphers {
			id, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("xhr/transport: unknown cipher suite %q", name)
			}
			cfg.CipherSuites = append(cfg.CipherSuites, id)
		}
	}

	return cfg, nil
}
