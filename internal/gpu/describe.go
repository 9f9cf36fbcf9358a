/**
# Copyright 2024 NVIDIA CORPORATION
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvlib/pkg/nvlib/device"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// notAvailable is reported for static fields the platform cannot provide.
const notAvailable = "N/A"

// DeviceInfo holds the static identity and version details for a device.
type DeviceInfo struct {
	Name                  string
	UUID                  string
	Architecture          string
	Brand                 string
	CudaComputeCapability string
	PCIBusID              string
	PCIeGeneration        int
	PCIeLinkWidth         int
	VBIOSVersion          string
	DriverVersion         string
	NVMLVersion           string
	CudaDriverVersion     string
}

// DeviceName returns the product name of dev, or "N/A" when the query fails.
func DeviceName(dev nvml.Device) string {
	name, ret := dev.GetName()
	if ret != nvml.SUCCESS {
		return notAvailable
	}
	return name
}

// DescribeDevice collects the static fields for dev. Fields the platform
// cannot report come back as "N/A" or zero rather than failing the call.
func (l Lib) DescribeDevice(dev nvml.Device) DeviceInfo {
	di := DeviceInfo{
		Name:                  DeviceName(dev),
		UUID:                  notAvailable,
		Architecture:          notAvailable,
		Brand:                 notAvailable,
		CudaComputeCapability: notAvailable,
		PCIBusID:              notAvailable,
		VBIOSVersion:          notAvailable,
		DriverVersion:         notAvailable,
		NVMLVersion:           notAvailable,
		CudaDriverVersion:     notAvailable,
	}

	if v, ret := dev.GetUUID(); ret == nvml.SUCCESS {
		di.UUID = v
	}
	if v, ret := dev.GetVbiosVersion(); ret == nvml.SUCCESS {
		di.VBIOSVersion = v
	}
	if v, ret := dev.GetCurrPcieLinkGeneration(); ret == nvml.SUCCESS {
		di.PCIeGeneration = v
	}
	if v, ret := dev.GetCurrPcieLinkWidth(); ret == nvml.SUCCESS {
		di.PCIeLinkWidth = v
	}

	devicelib := device.New(l.Interface)
	if d, err := devicelib.NewDevice(dev); err == nil {
		if v, err := d.GetArchitectureAsString(); err == nil {
			di.Architecture = v
		}
		if v, err := d.GetBrandAsString(); err == nil {
			di.Brand = v
		}
		if v, err := d.GetCudaComputeCapabilityAsString(); err == nil {
			di.CudaComputeCapability = v
		}
		if v, err := d.GetPCIBusID(); err == nil {
			di.PCIBusID = v
		}
	}

	if v, ret := l.Interface.SystemGetDriverVersion(); ret == nvml.SUCCESS {
		di.DriverVersion = v
	}
	if v, ret := l.Interface.SystemGetNVMLVersion(); ret == nvml.SUCCESS {
		di.NVMLVersion = v
	}
	if v, ret := l.Interface.SystemGetCudaDriverVersion(); ret == nvml.SUCCESS {
		di.CudaDriverVersion = fmt.Sprintf("%d.%d", v/1000, v%1000/10)
	}

	return di
}
