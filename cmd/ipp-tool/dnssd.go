/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD publisher, via Avahi D-Bus API
 */

package main

import (
	"errors"
	"fmt"
	"net"

	"github.com/OpenPrinting/ippcodec/logger"
	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

const (
	// dnssdMaxSuffix limits collision-resolution attempts
	dnssdMaxSuffix = 10

	// avahiCollisionError is the D-Bus error name Avahi
	// reports on service name collision
	avahiCollisionError = "org.freedesktop.Avahi.CollisionError"
)

// DnsSdPublisher publishes IPP service under the printer's
// DNS-SD service instance name
type DnsSdPublisher struct {
	Log      *logger.Logger // Printer log
	State    *PrinterState  // Printer persistent state
	Name     string         // Service instance name
	Service  DnsSdSvcInfo   // Published service
	Loopback bool           // Publish on loopback interface only
	server   *avahi.Server  // Avahi server
	egroup   *avahi.EntryGroup
}

// NewDnsSdPublisher creates new DnsSdPublisher
func NewDnsSdPublisher(log *logger.Logger, state *PrinterState,
	name string, svc DnsSdSvcInfo, loopback bool) *DnsSdPublisher {

	return &DnsSdPublisher{
		Log:      log,
		State:    state,
		Name:     name,
		Service:  svc,
		Loopback: loopback,
	}
}

// Publish the service
//
// If name is taken, publisher retries with numeric suffix
// and remembers the resolved name in the printer state
func (publisher *DnsSdPublisher) Publish() error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("DNS-SD: %s", err)
	}

	publisher.server, err = avahi.ServerNew(conn)
	if err != nil {
		return fmt.Errorf("DNS-SD: AVAHI: %s", err)
	}

	iface := int32(avahi.InterfaceUnspec)
	if publisher.Loopback {
		var idx int
		idx, err = Loopback()
		if err != nil {
			publisher.server.Close()
			return fmt.Errorf("DNS-SD: %s", err)
		}
		iface = int32(idx)
	}

	for suffix := 0; suffix < dnssdMaxSuffix; suffix++ {
		instance := publisher.instance(suffix)
		err = publisher.publish(iface, instance)

		if err == nil {
			publisher.Log.Info('+', "DNS-SD: %s: published", instance)
			publisher.State.SetDNSSdName(publisher.Name, instance)
			return nil
		}

		if !dnssdIsCollision(err) {
			break
		}

		publisher.Log.Error(' ', "DNS-SD: %s: name collision", instance)
	}

	publisher.server.Close()
	publisher.server = nil

	return fmt.Errorf("DNS-SD: AVAHI: %s", err)
}

// publish the service under the instance name
func (publisher *DnsSdPublisher) publish(iface int32, instance string) error {
	egroup, err := publisher.server.EntryGroupNew()
	if err != nil {
		return err
	}

	svc := publisher.Service
	err = egroup.AddService(iface, avahi.ProtoUnspec, 0,
		instance, svc.Type, "local", "", uint16(svc.Port),
		svc.Txt.export())

	if err == nil {
		err = egroup.Commit()
	}

	if err != nil {
		publisher.server.EntryGroupFree(egroup)
		return err
	}

	publisher.egroup = egroup
	return nil
}

// Unpublish everything
func (publisher *DnsSdPublisher) Unpublish() {
	if publisher.server == nil {
		return
	}

	if publisher.egroup != nil {
		publisher.server.EntryGroupFree(publisher.egroup)
		publisher.egroup = nil
	}

	publisher.server.Close()
	publisher.server = nil

	publisher.Log.Info('-', "DNS-SD: %s: removed", publisher.Name)
}

// Build service instance name with optional collision-resolution suffix
func (publisher *DnsSdPublisher) instance(suffix int) string {
	if suffix != 0 {
		return fmt.Sprintf("%s (%d)", publisher.Name, suffix)
	}

	state := publisher.State
	if state.DNSSdName == publisher.Name && state.DNSSdOverride != "" {
		return state.DNSSdOverride
	}

	return publisher.Name
}

// dnssdIsCollision tells if err is Avahi name collision error
func dnssdIsCollision(err error) bool {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) {
		return dbusErr.Name == avahiCollisionError
	}
	return false
}

// Loopback returns index of loopback interface
func Loopback() (int, error) {
	interfaces, err := net.Interfaces()
	if err == nil {
		for _, iface := range interfaces {
			if (iface.Flags & net.FlagLoopback) != 0 {
				return iface.Index, nil
			}
		}
	}

	if err == nil {
		err = errors.New("not found")
	}

	return 0, fmt.Errorf("Loopback discovery: %s", err)
}
