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

const bytesPerMiB = 1024 * 1024

func (p *probe) memoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "memory",
		Usage: "print the GPU memory usage",
		Action: func(ctx *cli.Context) error {
			return p.withDevice(func(_ gpu.Lib, dev nvml.Device) error {
				return p.printMemory(dev)
			})
		},
	}
}

func (p *probe) printMemory(dev nvml.Device) error {
	mem, err := gpu.MemoryInfo(dev)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.stdout, "Memory Used: %d MiB\n", mem.Used/bytesPerMiB)
	fmt.Fprintf(p.stdout, "Memory Free: %d MiB\n", mem.Free/bytesPerMiB)
	fmt.Fprintf(p.stdout, "Memory Total: %d MiB\n", mem.Total/bytesPerMiB)
	if mem.Total > 0 {
		fmt.Fprintf(p.stdout, "Memory Usage: %d%%\n", mem.Used*100/mem.Total)
	}

	return nil
}
