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

func (p *probe) infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print the static details for the GPU: identity, versions and PCIe link",
		Action: func(ctx *cli.Context) error {
			return p.withDevice(p.printInfo)
		},
	}
}

func (p *probe) printInfo(lib gpu.Lib, dev nvml.Device) error {
	di := lib.DescribeDevice(dev)

	fmt.Fprintf(p.stdout, "Device 0: %s\n", di.Name)
	fmt.Fprintf(p.stdout, "UUID: %s\n", di.UUID)
	fmt.Fprintf(p.stdout, "Architecture: %s\n", di.Architecture)
	fmt.Fprintf(p.stdout, "Brand: %s\n", di.Brand)
	fmt.Fprintf(p.stdout, "CUDA Compute Capability: %s\n", di.CudaComputeCapability)
	fmt.Fprintf(p.stdout, "PCI Bus ID: %s\n", di.PCIBusID)
	fmt.Fprintf(p.stdout, "PCIe Generation: %d\n", di.PCIeGeneration)
	fmt.Fprintf(p.stdout, "PCIe Link Width: x%d\n", di.PCIeLinkWidth)
	fmt.Fprintf(p.stdout, "VBIOS Version: %s\n", di.VBIOSVersion)
	fmt.Fprintf(p.stdout, "Driver Version: %s\n", di.DriverVersion)
	fmt.Fprintf(p.stdout, "NVML Version: %s\n", di.NVMLVersion)
	fmt.Fprintf(p.stdout, "CUDA Driver Version: %s\n", di.CudaDriverVersion)

	return nil
}
