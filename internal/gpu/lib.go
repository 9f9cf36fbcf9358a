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
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// deviceIndex is the only device the probe inspects.
const deviceIndex = 0

var (
	// ErrLibraryNotFound indicates that the NVML shared library could not
	// be loaded at runtime.
	ErrLibraryNotFound = errors.New("NVML library not found")

	// ErrNoDevices indicates that NVML initialized but enumerated no GPUs.
	ErrNoDevices = errors.New("no NVIDIA GPU found")
)

// Lib wraps an nvml.Interface, converting NVML return codes to errors at
// the package boundary.
type Lib struct {
	nvml.Interface
}

// New creates a Lib on top of the supplied NVML implementation.
func New(nvmllib nvml.Interface) Lib {
	return Lib{nvmllib}
}

// Init initializes the NVML library. A failure to locate the shared library
// is reported as ErrLibraryNotFound so that callers can surface the known
// deployment pitfalls for it.
func (l Lib) Init() error {
	ret := l.Interface.Init()
	switch ret {
	case nvml.SUCCESS:
		return nil
	case nvml.ERROR_LIBRARY_NOT_FOUND:
		return fmt.Errorf("failed to initialize NVML: %w", ErrLibraryNotFound)
	default:
		return fmt.Errorf("failed to initialize NVML: %v", ret)
	}
}

// Shutdown releases the NVML session.
func (l Lib) Shutdown() error {
	if ret := l.Interface.Shutdown(); ret != nvml.SUCCESS {
		return fmt.Errorf("failed to shutdown NVML: %v", ret)
	}
	return nil
}

// DeviceCount returns the number of devices NVML enumerates.
func (l Lib) DeviceCount() (int, error) {
	count, ret := l.Interface.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("failed to get device count: %v", ret)
	}
	return count, nil
}

// PrimaryDevice returns the handle for device index 0, the fixed device
// contract for every probe command. ErrNoDevices is returned when NVML
// enumerates no GPUs at all.
func (l Lib) PrimaryDevice() (nvml.Device, error) {
	count, err := l.DeviceCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoDevices
	}
	device, ret := l.Interface.DeviceGetHandleByIndex(deviceIndex)
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("failed to get handle for device %d: %v", deviceIndex, ret)
	}
	return device, nil
}
