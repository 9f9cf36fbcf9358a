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

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Sample is one instantaneous reading of a device's dynamic counters.
type Sample struct {
	Utilization      uint32
	MemoryUsedBytes  uint64
	MemoryTotalBytes uint64
	Temperature      uint32
	GraphicsClockMHz uint32
	MemoryClockMHz   uint32
	PowerUsageWatts  float64
	PowerLimitWatts  float64
	FanSpeedPercent  uint32
	PCIeTxKiBps      uint32
	PCIeRxKiBps      uint32
}

// Utilization returns the instantaneous compute utilization of dev as an
// integer percentage. Values outside [0, 100] are rejected as query
// failures rather than passed through.
func Utilization(dev nvml.Device) (uint32, error) {
	util, ret := dev.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("failed to get utilization rates: %v", ret)
	}
	if util.Gpu > 100 {
		return 0, fmt.Errorf("driver reported utilization %d%% outside [0, 100]", util.Gpu)
	}
	return util.Gpu, nil
}

// MemoryInfo returns the device memory counters.
func MemoryInfo(dev nvml.Device) (nvml.Memory, error) {
	mem, ret := dev.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return nvml.Memory{}, fmt.Errorf("failed to get memory info: %v", ret)
	}
	return mem, nil
}

// CollectSample reads the dynamic counters for dev. Utilization, memory and
// temperature are required; the remaining counters degrade to zero on
// devices that do not report them.
func CollectSample(dev nvml.Device) (Sample, error) {
	util, err := Utilization(dev)
	if err != nil {
		return Sample{}, err
	}
	mem, err := MemoryInfo(dev)
	if err != nil {
		return Sample{}, err
	}
	temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return Sample{}, fmt.Errorf("failed to get temperature: %v", ret)
	}

	s := Sample{
		Utilization:      util,
		MemoryUsedBytes:  mem.Used,
		MemoryTotalBytes: mem.Total,
		Temperature:      temp,
	}

	if v, ret := dev.GetClockInfo(nvml.CLOCK_GRAPHICS); ret == nvml.SUCCESS {
		s.GraphicsClockMHz = v
	}
	if v, ret := dev.GetClockInfo(nvml.CLOCK_MEM); ret == nvml.SUCCESS {
		s.MemoryClockMHz = v
	}

	// Power usage is only meaningful alongside its limit.
	usage, uret := dev.GetPowerUsage()
	limit, lret := dev.GetPowerManagementLimit()
	if uret == nvml.SUCCESS && lret == nvml.SUCCESS {
		s.PowerUsageWatts = float64(usage) / 1000.0
		s.PowerLimitWatts = float64(limit) / 1000.0
	}

	if v, ret := dev.GetFanSpeed(); ret == nvml.SUCCESS {
		s.FanSpeedPercent = v
	}

	// The PCIe throughput counters are sampled as a pair too.
	tx, tret := dev.GetPcieThroughput(nvml.PCIE_UTIL_TX_BYTES)
	rx, rret := dev.GetPcieThroughput(nvml.PCIE_UTIL_RX_BYTES)
	if tret == nvml.SUCCESS && rret == nvml.SUCCESS {
		s.PCIeTxKiBps = tx
		s.PCIeRxKiBps = rx
	}

	return s, nil
}
