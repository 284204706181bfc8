// Package server provides the listeners the HTTP and gRPC front-ends accept
// connections on.
package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/ipo-auth/internal/config"
	"github.com/dtroode/ipo-auth/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// ALPN protocol ids advertised by TLS listeners. gRPC clients refuse a TLS
// connection that does not negotiate h2.
const (
	ProtocolHTTP2  = "h2"
	ProtocolHTTP11 = "http/1.1"
)

// NewSecurityLayer picks a TLS or plain listener from cfg.
//
// Parameters:
//   - cfg: TLS section of the service configuration
//   - nextProtos: ALPN protocols the TLS listener advertises, ignored for plain listeners
//
// Returns a TLSListener when TLS is enabled and a PlainListener otherwise.
func NewSecurityLayer(cfg config.TLS, nextProtos ...string) model.SecurityLayer {
	if cfg.Enabled {
		return NewTLSListener(cfg.CertFileName, cfg.PrivateKeyFileName, nextProtos...)
	}
	return NewPlainListener()
}

// TLSListener opens TLS listeners from a certificate and key on disk. Session
// tokens travel in headers, so production deployments should use it.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
	nextProtos         []string
}

// NewTLSListener creates a new TLSListener instance.
//
// Parameters:
//   - certFileName: Path to the TLS certificate file
//   - privateKeyFileName: Path to the private key file
//   - nextProtos: ALPN protocols to advertise, in preference order
func NewTLSListener(certFileName, privateKeyFileName string, nextProtos ...string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
		nextProtos:         nextProtos,
	}
}

// Listen loads the key pair and listens with TLS 1.2 or newer.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   l.nextProtos,
	}
	return tls.Listen(protocol, addr, tlsConfig)
}

// PlainListener opens unencrypted listeners.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
