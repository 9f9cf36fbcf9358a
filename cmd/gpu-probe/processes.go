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

func (p *probe) processesCommand() *cli.Command {
	return &cli.Command{
		Name:  "processes",
		Usage: "list the processes holding memory on the GPU",
		Action: func(ctx *cli.Context) error {
			return p.withDevice(func(_ gpu.Lib, dev nvml.Device) error {
				return p.printProcesses(dev)
			})
		},
	}
}

func (p *probe) printProcesses(dev nvml.Device) error {
	processes, err := gpu.ListProcesses(dev)
	if err != nil {
		return err
	}

	if len(processes) == 0 {
		fmt.Fprintln(p.stdout, "No GPU processes found")
		return nil
	}

	fmt.Fprintf(p.stdout, "%-10s %-6s %-12s %s\n", "PID", "TYPE", "GPU MEMORY", "NAME")
	for _, proc := range processes {
		fmt.Fprintf(p.stdout, "%-10d %-6s %-12s %s\n", proc.PID, proc.Engine, formatProcessMemory(proc.UsedMemory), proc.Name)
	}

	return nil
}

// formatProcessMemory renders a per-process memory value, accounting for
// drivers that cannot attribute memory to a process.
func formatProcessMemory(bytes uint64) string {
	if bytes == gpu.UnknownMemory {
		return "N/A"
	}
	return fmt.Sprintf("%d MiB", bytes/bytesPerMiB)
}
