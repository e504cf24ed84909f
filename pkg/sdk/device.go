package sdk

import (
	"context"
	"time"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// DeviceStatus is the last known connectivity of a device
type DeviceStatus struct {
	Online bool
	// LastSeen is zero when the device never connected
	LastSeen time.Time
}

// Device is a desktop or mobile client installation
type Device struct {
	client *api.Client
	state  attr.State
	id     string

	name        attr.Field[string]
	owner       attr.Field[*User]
	osFamily    attr.Field[string]
	installDate attr.Field[time.Time]
	status      attr.Field[DeviceStatus]
}

func NewDevice(c *api.Client, id string) *Device {
	d := &Device{client: c, id: id}
	d.name = attr.Synced[string](&d.state, "name", d.Load, d.pushName)
	d.owner = attr.ReadOnly[*User](&d.state, "owner", d.Load)
	d.osFamily = attr.ReadOnly[string](&d.state, "os_family", d.Load)
	d.installDate = attr.ReadOnly[time.Time](&d.state, "install_date", d.Load)
	d.status = attr.ReadOnly[DeviceStatus](&d.state, "status", d.loadStatus)
	return d
}

func newDeviceFrom(c *api.Client, data *api.Device) *Device {
	d := NewDevice(c, data.ID)
	d.fromResponse(data)
	return d
}

func (d *Device) ID() string { return d.id }

func (d *Device) Name(ctx context.Context) (string, error) { return d.name.Get(ctx) }

func (d *Device) SetName(ctx context.Context, name string) error { return d.name.Set(ctx, name) }

// Owner returns an unloaded reference to the owning user
func (d *Device) Owner(ctx context.Context) (*User, error) { return d.owner.Get(ctx) }

func (d *Device) OSFamily(ctx context.Context) (string, error) { return d.osFamily.Get(ctx) }

func (d *Device) InstallDate(ctx context.Context) (time.Time, error) {
	return d.installDate.Get(ctx)
}

// Status is fetched separately from the device metadata
func (d *Device) Status(ctx context.Context) (DeviceStatus, error) { return d.status.Get(ctx) }

func (d *Device) Equal(other *Device) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.id == other.id
}

func (d *Device) fromResponse(data *api.Device) {
	d.id = data.ID
	d.name.Fill(data.Name)
	d.owner.Fill(NewUser(d.client, data.Owner))
	d.osFamily.Fill(data.OSFamily)
	d.installDate.Fill(data.InstallDate)
}

func (d *Device) Load(ctx context.Context) error {
	data, err := d.client.GetDevice(ctx, d.id)
	if err != nil {
		return err
	}
	d.fromResponse(data)
	return nil
}

func (d *Device) loadStatus(ctx context.Context) error {
	data, err := d.client.GetDeviceStatus(ctx, d.id)
	if err != nil {
		return err
	}
	status := DeviceStatus{Online: data.Online}
	if data.LastSeen != nil {
		status.LastSeen = *data.LastSeen
	}
	d.status.Fill(status)
	return nil
}

func (d *Device) pushName(ctx context.Context, name string) error {
	data, err := d.client.UpdateDevice(ctx, d.id, name)
	if err != nil {
		return err
	}
	d.fromResponse(data)
	return nil
}
