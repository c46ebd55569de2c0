// Package fingerprint produces the client metadata id correlating a device
// with a tokenization flow.
package fingerprint

import (
	"strings"

	"github.com/google/uuid"
)

// Provider returns the client metadata id for a flow. The pairing id, when
// known, lets the backend correlate the browser switch with the device.
type Provider interface {
	ClientMetadataID(pairingID string) string
}

type DeviceProvider struct{}

func NewDeviceProvider() *DeviceProvider {
	return &DeviceProvider{}
}

// ClientMetadataID prefers the pairing id extracted from the approval URL;
// without one it mints a fresh 32-character id.
func (p *DeviceProvider) ClientMetadataID(pairingID string) string {
	if pairingID != "" {
		return pairingID
	}
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
