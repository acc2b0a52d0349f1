// Package gpu identifies the integrated and discrete video controllers of a
// hybrid-graphics machine.
package gpu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"hybridgpu/internal/log"

	"github.com/tidwall/gjson"
)

// ErrDetection is returned when the enumeration output cannot be used.
var ErrDetection = errors.New("gpu detection failed")

// DeviceRecord is one video controller reported by the enumerator.
type DeviceRecord struct {
	Name        string `json:"name"`
	DeviceID    string `json:"deviceId"`
	PNPDeviceID string `json:"pnpDeviceId"`
}

// Class is the role a controller plays in a hybrid setup.
type Class int

const (
	Unknown Class = iota
	Integrated
	Discrete
)

func (c Class) String() string {
	switch c {
	case Integrated:
		return "integrated"
	case Discrete:
		return "discrete"
	default:
		return "unknown"
	}
}

// Rule maps any of its substrings (case-sensitive) to a class.
type Rule struct {
	Substrings []string
	Class      Class
}

// Rules is the classification table. Earlier rules take precedence.
var Rules = []Rule{
	{Substrings: []string{"Intel", "UHD"}, Class: Integrated},
	{Substrings: []string{"NVIDIA", "GTX"}, Class: Discrete},
}

// Classify returns the class of the first rule matching name.
func Classify(name string) Class {
	for _, r := range Rules {
		for _, s := range r.Substrings {
			if strings.Contains(name, s) {
				return r.Class
			}
		}
	}
	return Unknown
}

// Inventory holds at most one controller per class.
type Inventory struct {
	Integrated *DeviceRecord
	Discrete   *DeviceRecord
}

// NewInventory classifies records in order. When several records share a
// class the last one wins.
func NewInventory(records []DeviceRecord) Inventory {
	var inv Inventory
	for i := range records {
		switch Classify(records[i].Name) {
		case Integrated:
			inv.Integrated = &records[i]
		case Discrete:
			inv.Discrete = &records[i]
		}
	}
	return inv
}

// Enumerator returns the raw JSON description of the installed controllers.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]byte, error)
}

// Detector runs a single detection pass.
type Detector struct {
	enumerator Enumerator
	logger     log.Logger
}

// NewDetector creates a Detector.
func NewDetector(e Enumerator, logger log.Logger) *Detector {
	return &Detector{enumerator: e, logger: logger}
}

// Detect enumerates the controllers once and classifies them. Failures are
// logged and produce an empty inventory; they are never returned.
func (d *Detector) Detect(ctx context.Context) Inventory {
	d.logger.Infof("Scanning WDDM topology via CIM...")

	var inv Inventory
	out, err := d.enumerator.Enumerate(ctx)
	if err != nil {
		d.logger.Errorf("Hardware scan failed: %v", err)
		d.warnNoDiscrete()
		return inv
	}

	records, err := ParseDevices(out)
	if err != nil {
		d.logger.Errorf("Hardware scan failed: %v", err)
		d.warnNoDiscrete()
		return inv
	}

	inv = NewInventory(records)
	if inv.Integrated != nil {
		d.logger.Successf("Integrated: %s", inv.Integrated.Name)
	}
	if inv.Discrete != nil {
		d.logger.Successf("Discrete:   %s", inv.Discrete.Name)
	} else {
		d.warnNoDiscrete()
	}
	return inv
}

func (d *Detector) warnNoDiscrete() {
	d.logger.Warnf("Discrete GPU not detected. Proceeding on the assumption that it exists.")
}

// ParseDevices decodes enumerator output. A bare JSON object is treated as a
// one-element list, which is how PowerShell serialises a single controller.
func ParseDevices(data []byte) ([]DeviceRecord, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: enumerator returned no output", ErrDetection)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: enumerator output is not valid JSON", ErrDetection)
	}

	root := gjson.ParseBytes(data)
	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("%w: unexpected JSON %s", ErrDetection, root.Type)
	}

	records := make([]DeviceRecord, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		name := "Unknown"
		if n := item.Get("Name"); n.Exists() && n.String() != "" {
			name = n.String()
		}
		records = append(records, DeviceRecord{
			Name:        name,
			DeviceID:    item.Get("DeviceID").String(),
			PNPDeviceID: item.Get("PNPDeviceID").String(),
		})
	}
	return records, nil
}
