package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/pkg/types"
)

func TestInfoCommand(t *testing.T) {
	tests := []struct {
		name        string
		json        bool
		wantContain []string
	}{
		{
			name:        "text",
			wantContain: []string{"Blob Information:", "Version: 17 (compatible with 16)", "Nodes: 23", "Phandles: 4", "Max depth: 4"},
		},
		{
			name:        "json",
			json:        true,
			wantContain: []string{`"nodes": 23`, `"version": 17`, `"phandles": 4`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runInfo([]string{testBlobPath(t)})
			})
			if err != nil {
				t.Fatalf("runInfo() error = %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestInfoCommand_Limits(t *testing.T) {
	resetFlags()
	maxNodes = 8

	_, err := captureOutput(t, func() error {
		return runInfo([]string{testBlobPath(t)})
	})
	if !errors.Is(err, types.ErrCapacity) {
		t.Fatalf("runInfo() error = %v, want capacity error", err)
	}
}

func TestDumpCommand(t *testing.T) {
	tests := []struct {
		name           string
		node           string
		depth          int
		format         string
		json           bool
		namesOnly      bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "whole tree",
			node:        "/",
			wantContain: []string{"/ {", "uart@10000000 {", `compatible = "ns16550a";`, "interrupt-parent = <&/soc/plic@c000000>;"},
		},
		{
			name:           "depth limit",
			node:           "/",
			depth:          2,
			wantContain:    []string{"soc {", "cpus {"},
			wantNotContain: []string{"uart@10000000 {", "cpu@0 {"},
		},
		{
			name:           "subtree",
			node:           "/cpus",
			wantContain:    []string{"cpus {", "cpu@0 {", `riscv,isa = "rv64imafdcsu";`},
			wantNotContain: []string{"soc {"},
		},
		{
			name:           "names only",
			node:           "/soc/test@100000",
			namesOnly:      true,
			wantContain:    []string{"compatible;", "reg;"},
			wantNotContain: []string{"syscon"},
		},
		{
			name:        "json",
			node:        "/soc/clint@2000000",
			json:        true,
			wantContain: []string{`"name": "clint@2000000"`, `"format": "reg"`},
		},
		{
			name:        "yaml",
			node:        "/memory@80000000",
			format:      "yaml",
			wantContain: []string{"name: memory@80000000", "addr: 2147483648"},
		},
		{
			name:    "bad format",
			node:    "/",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "missing node",
			node:    "/nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json
			dumpNode = tt.node
			dumpDepth = tt.depth
			dumpNames = tt.namesOnly
			if tt.format != "" {
				dumpFormat = tt.format
			}

			output, err := captureOutput(t, func() error {
				return runDump([]string{testBlobPath(t)})
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runDump() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestFindCommand(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		json        bool
		wantErr     error
		wantContain []string
	}{
		{
			name:        "memory",
			prefix:      "memory@",
			wantContain: []string{"memory@80000000  /memory@80000000  mem 0x80000000+0x8000000"},
		},
		{
			name:        "plic",
			prefix:      "plic@",
			wantContain: []string{"riscv,plic0", "mem 0xc000000+0x210000"},
		},
		{
			name:        "virtio json",
			prefix:      "virtio_mmio@",
			json:        true,
			wantContain: []string{`"name": "virtio,mmio"`, `"intr": 8`, `"intr": 1`},
		},
		{
			name:        "no match json",
			prefix:      "ethernet@",
			json:        true,
			wantContain: []string{"[]"},
		},
		{
			name:    "zero size cells",
			prefix:  "cpu@",
			wantErr: types.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runFind([]string{testBlobPath(t), tt.prefix})
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runFind() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runFind() error = %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestFindCommand_CBOR(t *testing.T) {
	resetFlags()
	quiet = true
	findCBOR = filepath.Join(t.TempDir(), "clint.cbor")

	output, err := captureOutput(t, func() error {
		return runFind([]string{testBlobPath(t), "clint@"})
	})
	if err != nil {
		t.Fatalf("runFind() error = %v", err)
	}
	if output != "" {
		t.Errorf("quiet mode printed %q", output)
	}

	data, err := os.ReadFile(findCBOR)
	if err != nil {
		t.Fatalf("read cbor: %v", err)
	}
	var res []fdt.Resource
	if err := cbor.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode cbor: %v", err)
	}
	if len(res) != 1 || res[0].Name != "riscv,clint0" || res[0].Mem != (fdt.MemRange{Addr: 0x2000000, Len: 0x10000}) {
		t.Errorf("unexpected resources: %+v", res)
	}
}

func TestPathCommand(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		json        bool
		wantErr     error
		wantContain []string
	}{
		{
			name:        "uart",
			path:        "/soc/uart@10000000",
			wantContain: []string{"ns16550a  /soc/uart@10000000  mem 0x10000000+0x100  irq 10"},
		},
		{
			name:        "json",
			path:        "/soc/rtc@101000",
			json:        true,
			wantContain: []string{`"name": "google,goldfish-rtc"`, `"intr": 11`},
		},
		{
			name:    "longer than any path",
			path:    "/soc/uart@10000000/serial",
			wantErr: types.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runPath([]string{testBlobPath(t), tt.path})
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runPath() error = %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestCompatCommand(t *testing.T) {
	resetFlags()

	output, err := captureOutput(t, func() error {
		return runCompat([]string{testBlobPath(t), "syscon"})
	})
	if err != nil {
		t.Fatalf("runCompat() error = %v", err)
	}
	if output != "/soc/test@100000\n" {
		t.Errorf("runCompat() output = %q", output)
	}

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runCompat([]string{testBlobPath(t), "virtio,mmio"})
	})
	if err != nil {
		t.Fatalf("runCompat() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"/soc/virtio_mmio@10001000", "/soc/virtio_mmio@10008000"})
}

func TestOpenTree_Missing(t *testing.T) {
	resetFlags()
	if _, err := openTree(filepath.Join(t.TempDir(), "missing.dtb")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("openTree() error = %v", err)
	}
}
