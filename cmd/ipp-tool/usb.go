/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP-over-USB devices discovery
 */

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/gousb"
)

// UsbAddr represents an USB device address
type UsbAddr struct {
	Bus     int // The bus on which the device was detected
	Address int // The address of the device on the bus
}

// String returns a human-readable representation of UsbAddr
func (addr UsbAddr) String() string {
	return fmt.Sprintf("Bus %.3d Device %.3d", addr.Bus, addr.Address)
}

// Less compares 2 addresses, for sorting
func (addr UsbAddr) Less(addr2 UsbAddr) bool {
	return addr.Bus < addr2.Bus ||
		(addr.Bus == addr2.Bus && addr.Address < addr2.Address)
}

// UsbDeviceDesc describes IPP-over-USB device
type UsbDeviceDesc struct {
	UsbAddr                         // Device address
	Vendor        gousb.ID          // Vendor ID
	Product       gousb.ID          // Product ID
	IfCount       int               // Count of IPP-over-USB interfaces
	MfgAndProduct string            // Manufacturer and product strings
	SerialNumber  string            // Serial number, if available
	desc          *gousb.DeviceDesc // Underlying gousb descriptor
}

// usbIppIfCount counts IPP over USB interfaces on device
func usbIppIfCount(desc *gousb.DeviceDesc) int {
	cnt := 0

	for _, conf := range desc.Configs {
		for _, iface := range conf.Interfaces {
			for _, alt := range iface.AltSettings {
				if alt.Class == gousb.ClassPrinter &&
					alt.SubClass == 1 &&
					alt.Protocol == 4 {
					cnt++
				}
			}
		}
	}

	return cnt
}

// usbIsIppUsbDevice checks if device implements IPP over USB.
// Such device needs at least 2 interfaces
func usbIsIppUsbDevice(desc *gousb.DeviceDesc) bool {
	return usbIppIfCount(desc) >= 2
}

// UsbGetIppOverUsbDeviceDescs returns descriptors of all
// IPP-over-USB devices, sorted by address
func UsbGetIppOverUsbDeviceDescs() ([]UsbDeviceDesc, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var list []UsbDeviceDesc
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if !usbIsIppUsbDevice(desc) {
			return false
		}

		list = append(list, UsbDeviceDesc{
			UsbAddr: UsbAddr{Bus: desc.Bus, Address: desc.Address},
			Vendor:  desc.Vendor,
			Product: desc.Product,
			IfCount: usbIppIfCount(desc),
			desc:    desc,
		})

		return true
	})

	// OpenDevices may fail on some devices while
	// opening others, so handle what is opened
	for _, dev := range devs {
		for i := range list {
			if list[i].desc == dev.Desc {
				list[i].MfgAndProduct, list[i].SerialNumber =
					usbDeviceStrings(dev)
			}
		}
		dev.Close()
	}

	if err != nil && len(list) == 0 {
		return nil, err
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].UsbAddr.Less(list[j].UsbAddr)
	})

	return list, nil
}

// usbDeviceStrings fetches manufacturer, product and serial
// number strings from the device
func usbDeviceStrings(dev *gousb.Device) (mfgAndProduct, serial string) {
	mfg, _ := dev.Manufacturer()
	prod, _ := dev.Product()
	serial, _ = dev.SerialNumber()

	mfg = strings.TrimSpace(mfg)
	prod = strings.TrimSpace(prod)

	switch {
	case mfg == "":
		mfgAndProduct = prod
	case strings.HasPrefix(prod, mfg):
		mfgAndProduct = prod
	default:
		mfgAndProduct = strings.TrimSpace(mfg + " " + prod)
	}

	return mfgAndProduct, strings.TrimSpace(serial)
}
