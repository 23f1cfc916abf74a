package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Enumerate sound subsystem devices via udev, so the audio
 *		front end can pick a capture device by vendor/product or
 *		card name instead of a hardcoded index.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// SoundDevice describes one udev-enumerated sound card.
type SoundDevice struct {
	SysName string
	Vendor  string
	Product string
	CardID  string
}

// ListSoundDevices enumerates the "sound" udev subsystem and returns one
// SoundDevice per card found.
func ListSoundDevices() ([]SoundDevice, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()

	if err := e.AddMatchSubsystem("sound"); err != nil {
		return nil, fmt.Errorf("devicediscovery: matching subsystem: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("devicediscovery: enumerating devices: %w", err)
	}

	seen := make(map[string]bool)
	var out []SoundDevice
	for _, d := range devices {
		cardID := d.PropertyValue("SOUND_CARD_ID")
		if cardID == "" || seen[cardID] {
			continue
		}
		seen[cardID] = true

		out = append(out, SoundDevice{
			SysName: d.Sysname(),
			Vendor:  d.PropertyValue("ID_VENDOR"),
			Product: d.PropertyValue("ID_MODEL"),
			CardID:  cardID,
		})
	}
	return out, nil
}

// FindSoundDeviceByVendor returns the first enumerated sound device whose
// ID_VENDOR property matches vendor.
func FindSoundDeviceByVendor(vendor string) (SoundDevice, error) {
	devices, err := ListSoundDevices()
	if err != nil {
		return SoundDevice{}, err
	}
	for _, d := range devices {
		if d.Vendor == vendor {
			return d, nil
		}
	}
	return SoundDevice{}, fmt.Errorf("devicediscovery: no sound device with vendor %q", vendor)
}
