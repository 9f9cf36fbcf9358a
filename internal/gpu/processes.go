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
	"sort"

	"github.com/prometheus/procfs"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// UnknownMemory is the value the driver reports for a process whose device
// memory usage it cannot account, for example under WDDM.
const UnknownMemory = ^uint64(0)

// EngineType identifies which device engines a process is using.
type EngineType string

const (
	EngineCompute  EngineType = "C"
	EngineGraphics EngineType = "G"
	EngineBoth     EngineType = "C+G"
)

// Process describes one process holding memory on a device.
type Process struct {
	PID        uint32
	Name       string
	Engine     EngineType
	UsedMemory uint64
}

// ListProcesses returns the compute and graphics processes running on dev,
// merged by PID and ordered by PID. A device that does not support one of
// the queries contributes an empty list for it.
func ListProcesses(dev nvml.Device) ([]Process, error) {
	compute, ret := dev.GetComputeRunningProcesses()
	if ret != nvml.SUCCESS && ret != nvml.ERROR_NOT_SUPPORTED {
		return nil, fmt.Errorf("failed to get compute processes: %v", ret)
	}
	graphics, ret := dev.GetGraphicsRunningProcesses()
	if ret != nvml.SUCCESS && ret != nvml.ERROR_NOT_SUPPORTED {
		return nil, fmt.Errorf("failed to get graphics processes: %v", ret)
	}

	byPID := make(map[uint32]*Process)
	for _, pi := range compute {
		byPID[pi.Pid] = &Process{
			PID:        pi.Pid,
			Name:       processName(pi.Pid),
			Engine:     EngineCompute,
			UsedMemory: pi.UsedGpuMemory,
		}
	}
	for _, pi := range graphics {
		if p, ok := byPID[pi.Pid]; ok {
			p.Engine = EngineBoth
			continue
		}
		byPID[pi.Pid] = &Process{
			PID:        pi.Pid,
			Name:       processName(pi.Pid),
			Engine:     EngineGraphics,
			UsedMemory: pi.UsedGpuMemory,
		}
	}

	processes := make([]Process, 0, len(byPID))
	for _, p := range byPID {
		processes = append(processes, *p)
	}
	sort.Slice(processes, func(i, j int) bool {
		return processes[i].PID < processes[j].PID
	})

	return processes, nil
}

// processName resolves the short command name for pid from /proc, falling
// back to "unknown" when the process has already exited or cannot be read.
func processName(pid uint32) string {
	proc, err := procfs.NewProc(int(pid))
	if err != nil {
		return "unknown"
	}
	comm, err := proc.Comm()
	if err != nil || comm == "" {
		return "unknown"
	}
	return comm
}
