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
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/NVIDIA/go-nvml/pkg/nvml/mock"
)

func processDevice(compute []nvml.ProcessInfo, computeRet nvml.Return, graphics []nvml.ProcessInfo, graphicsRet nvml.Return) *mock.Device {
	return &mock.Device{
		GetComputeRunningProcessesFunc: func() ([]nvml.ProcessInfo, nvml.Return) {
			return compute, computeRet
		},
		GetGraphicsRunningProcessesFunc: func() ([]nvml.ProcessInfo, nvml.Return) {
			return graphics, graphicsRet
		},
	}
}

func TestListProcesses(t *testing.T) {
	testCases := []struct {
		description   string
		compute       []nvml.ProcessInfo
		computeRet    nvml.Return
		graphics      []nvml.ProcessInfo
		graphicsRet   nvml.Return
		expectedError bool
		expected      []struct {
			pid    uint32
			engine EngineType
			memory uint64
		}
	}{
		{
			description: "no processes",
			expected:    nil,
		},
		{
			description: "compute and graphics merge by pid and sort",
			compute: []nvml.ProcessInfo{
				{Pid: 4294967290, UsedGpuMemory: 1610612736},
				{Pid: 4294967250, UsedGpuMemory: 536870912},
			},
			graphics: []nvml.ProcessInfo{
				{Pid: 4294967290, UsedGpuMemory: 1610612736},
				{Pid: 4294967270, UsedGpuMemory: 268435456},
			},
			expected: []struct {
				pid    uint32
				engine EngineType
				memory uint64
			}{
				{pid: 4294967250, engine: EngineCompute, memory: 536870912},
				{pid: 4294967270, engine: EngineGraphics, memory: 268435456},
				{pid: 4294967290, engine: EngineBoth, memory: 1610612736},
			},
		},
		{
			description: "unsupported queries yield an empty list",
			computeRet:  nvml.ERROR_NOT_SUPPORTED,
			graphicsRet: nvml.ERROR_NOT_SUPPORTED,
			expected:    nil,
		},
		{
			description:   "compute query failure",
			computeRet:    nvml.ERROR_UNKNOWN,
			expectedError: true,
		},
		{
			description:   "graphics query failure",
			graphicsRet:   nvml.ERROR_GPU_IS_LOST,
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dev := processDevice(tc.compute, tc.computeRet, tc.graphics, tc.graphicsRet)

			processes, err := ListProcesses(dev)
			if tc.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, processes, len(tc.expected))
			for i, e := range tc.expected {
				require.Equal(t, e.pid, processes[i].PID)
				require.Equal(t, e.engine, processes[i].Engine)
				require.Equal(t, e.memory, processes[i].UsedMemory)
			}
		})
	}
}

func TestProcessNameResolution(t *testing.T) {
	// The test binary itself is the one process guaranteed to be running.
	self := uint32(os.Getpid())
	dev := processDevice(
		[]nvml.ProcessInfo{
			{Pid: self, UsedGpuMemory: 1048576},
			{Pid: 4294967295, UsedGpuMemory: 1048576},
		},
		nvml.SUCCESS,
		nil,
		nvml.SUCCESS,
	)

	processes, err := ListProcesses(dev)
	require.NoError(t, err)
	require.Len(t, processes, 2)

	byPID := make(map[uint32]Process)
	for _, p := range processes {
		byPID[p.PID] = p
	}
	require.NotEqual(t, "unknown", byPID[self].Name)
	require.NotEmpty(t, byPID[self].Name)
	require.Equal(t, "unknown", byPID[4294967295].Name)
}
