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

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/NVIDIA/gpu-probe/internal/gpu"
)

func (p *probe) snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "print one reading of every dynamic GPU counter",
		Action: func(ctx *cli.Context) error {
			return p.withDevice(func(_ gpu.Lib, dev nvml.Device) error {
				return p.printSnapshot(dev)
			})
		},
	}
}

func (p *probe) printSnapshot(dev nvml.Device) error {
	sample, err := gpu.CollectSample(dev)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.stdout, "Device 0: %s\n", gpu.DeviceName(dev))
	fmt.Fprintf(p.stdout, "GPU Utilization: %d%%\n", sample.Utilization)
	fmt.Fprintf(p.stdout, "Memory Used: %d MiB / %d MiB\n", sample.MemoryUsedBytes/bytesPerMiB, sample.MemoryTotalBytes/bytesPerMiB)
	fmt.Fprintf(p.stdout, "Temperature: %d C\n", sample.Temperature)
	fmt.Fprintf(p.stdout, "Graphics Clock: %d MHz\n", sample.GraphicsClockMHz)
	fmt.Fprintf(p.stdout, "Memory Clock: %d MHz\n", sample.MemoryClockMHz)
	fmt.Fprintf(p.stdout, "Power Usage: %.1f W / %.1f W\n", sample.PowerUsageWatts, sample.PowerLimitWatts)
	fmt.Fprintf(p.stdout, "Fan Speed: %d%%\n", sample.FanSpeedPercent)
	fmt.Fprintf(p.stdout, "PCIe Throughput TX: %d KiB/s\n", sample.PCIeTxKiBps)
	fmt.Fprintf(p.stdout, "PCIe Throughput RX: %d KiB/s\n", sample.PCIeRxKiBps)

	return nil
}
