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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/NVIDIA/gpu-probe/internal/gpu"
	"github.com/NVIDIA/gpu-probe/internal/info"
)

func main() {
	c := newApp(nvml.New(), os.Stdout)
	if err := c.Run(os.Args); err != nil {
		klog.Error(err)
		os.Exit(1)
	}
}

// probe carries the dependencies the commands share: the NVML implementation
// to probe through and the writer that receives the report.
type probe struct {
	nvmllib nvml.Interface
	stdout  io.Writer
}

func newApp(nvmllib nvml.Interface, stdout io.Writer) *cli.App {
	p := &probe{
		nvmllib: nvmllib,
		stdout:  stdout,
	}

	c := cli.NewApp()
	c.Name = "gpu-probe"
	c.Usage = "report one-shot NVIDIA GPU telemetry readings"
	c.Version = info.GetVersionString()
	c.Action = func(ctx *cli.Context) error {
		return p.printUtilization(ctx)
	}
	c.Commands = []*cli.Command{
		p.infoCommand(),
		p.memoryCommand(),
		p.snapshotCommand(),
		p.processesCommand(),
	}

	return c
}

// withDevice runs f against device 0 inside an NVML session. The session is
// shut down on every path once initialization has succeeded.
func (p *probe) withDevice(f func(lib gpu.Lib, dev nvml.Device) error) error {
	lib := gpu.New(p.nvmllib)

	if err := lib.Init(); err != nil {
		if errors.Is(err, gpu.ErrLibraryNotFound) {
			klog.Error("Unable to load the NVML shared library (libnvidia-ml.so.1).")
			klog.Error("Check that the NVIDIA driver is installed and that the library is on the dynamic loader path.")
			klog.Error("A missing libnvidia-ml.so.1 symlink to the versioned driver library is a common cause; 'ldconfig -p | grep libnvidia-ml' shows what the loader sees.")
		}
		return err
	}
	defer func() {
		if err := lib.Shutdown(); err != nil {
			klog.Warningf("Error shutting down NVML: %v", err)
		}
	}()

	device, err := lib.PrimaryDevice()
	if err != nil {
		return err
	}

	return f(lib, device)
}

// printUtilization implements the default zero-argument invocation: one
// utilization reading for device 0, printed as a single line.
func (p *probe) printUtilization(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return fmt.Errorf("unexpected arguments: %v", ctx.Args().Slice())
	}
	return p.withDevice(func(_ gpu.Lib, dev nvml.Device) error {
		util, err := gpu.Utilization(dev)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.stdout, "GPU Utilization: %d%%\n", util)
		return nil
	})
}
