package fdttest

import "fmt"

// Phandles used by the virt fixture.
const (
	VirtCPUPhandle     = 1
	VirtCPUIntcPhandle = 2
	VirtPLICPhandle    = 3
	VirtTestPhandle    = 4
)

// VirtMMIOCount is the number of virtio_mmio transports in the virt fixture.
// Transport i sits at 0x10001000 + i*0x1000 and raises interrupt i+1.
const VirtMMIOCount = 8

// Virt returns a tree shaped like QEMU's riscv64 "virt" machine with one hart.
// The interrupt controller is placed after the devices that reference it, so
// every interrupt-parent in the tree is a forward reference.
func Virt() Node {
	soc := Node{
		Name: "soc",
		Props: []Prop{
			U32("#address-cells", 2),
			U32("#size-cells", 2),
			Str("compatible", "simple-bus"),
			Empty("ranges"),
		},
	}
	soc.Children = append(soc.Children,
		Node{Name: "flash@20000000", Props: []Prop{
			U32("bank-width", 4),
			U64("reg", 0x20000000, 0x2000000, 0x22000000, 0x2000000),
			Str("compatible", "cfi-flash"),
		}},
		Node{Name: "rtc@101000", Props: []Prop{
			U32("interrupts", 11),
			U32("interrupt-parent", VirtPLICPhandle),
			U64("reg", 0x101000, 0x1000),
			Str("compatible", "google,goldfish-rtc"),
		}},
		Node{Name: "uart@10000000", Props: []Prop{
			U32("interrupts", 10),
			U32("interrupt-parent", VirtPLICPhandle),
			U32("clock-frequency", 0x384000),
			U64("reg", 0x10000000, 0x100),
			Str("compatible", "ns16550a"),
		}},
		Node{Name: "poweroff", Props: []Prop{
			U32("value", 0x5555),
			U32("offset", 0),
			U32("regmap", VirtTestPhandle),
			Str("compatible", "syscon-poweroff"),
		}},
		Node{Name: "reboot", Props: []Prop{
			U32("value", 0x7777),
			U32("offset", 0),
			U32("regmap", VirtTestPhandle),
			Str("compatible", "syscon-reboot"),
		}},
		Node{Name: "test@100000", Props: []Prop{
			U32("phandle", VirtTestPhandle),
			U64("reg", 0x100000, 0x1000),
			Str("compatible", "sifive,test1", "sifive,test0", "syscon"),
		}},
	)
	for i := VirtMMIOCount - 1; i >= 0; i-- {
		addr := uint64(0x10001000 + i*0x1000)
		soc.Children = append(soc.Children, Node{
			Name: fmt.Sprintf("virtio_mmio@%x", addr),
			Props: []Prop{
				U32("interrupts", uint32(i+1)),
				U32("interrupt-parent", VirtPLICPhandle),
				U64("reg", addr, 0x1000),
				Str("compatible", "virtio,mmio"),
			},
		})
	}
	soc.Children = append(soc.Children,
		Node{Name: "plic@c000000", Props: []Prop{
			U32("phandle", VirtPLICPhandle),
			U32("riscv,ndev", 0x5f),
			U64("reg", 0xc000000, 0x210000),
			U32("interrupts-extended", VirtCPUIntcPhandle, 11, VirtCPUIntcPhandle, 9),
			Empty("interrupt-controller"),
			Str("compatible", "riscv,plic0"),
			U32("#address-cells", 0),
			U32("#interrupt-cells", 1),
		}},
		Node{Name: "clint@2000000", Props: []Prop{
			U32("interrupts-extended", VirtCPUIntcPhandle, 3, VirtCPUIntcPhandle, 7),
			U64("reg", 0x2000000, 0x10000),
			Str("compatible", "riscv,clint0"),
		}},
	)

	return Node{
		Props: []Prop{
			U32("#address-cells", 2),
			U32("#size-cells", 2),
			Str("compatible", "riscv-virtio"),
			Str("model", "riscv-virtio,qemu"),
		},
		Children: []Node{
			{Name: "chosen", Props: []Prop{
				Str("stdout-path", "/soc/uart@10000000"),
				Str("bootargs", "console=ttyS0"),
			}},
			{Name: "memory@80000000", Props: []Prop{
				Str("device_type", "memory"),
				U64("reg", 0x80000000, 0x8000000),
			}},
			{
				Name: "cpus",
				Props: []Prop{
					U32("#address-cells", 1),
					U32("#size-cells", 0),
					U32("timebase-frequency", 0x989680),
				},
				Children: []Node{{
					Name: "cpu@0",
					Props: []Prop{
						U32("phandle", VirtCPUPhandle),
						Str("device_type", "cpu"),
						U32("reg", 0),
						Str("status", "okay"),
						Str("compatible", "riscv"),
						Str("riscv,isa", "rv64imafdcsu"),
						Str("mmu-type", "riscv,sv48"),
					},
					Children: []Node{{
						Name: "interrupt-controller",
						Props: []Prop{
							U32("#interrupt-cells", 1),
							Empty("interrupt-controller"),
							Str("compatible", "riscv,cpu-intc"),
							U32("phandle", VirtCPUIntcPhandle),
						},
					}},
				}},
			},
			soc,
		},
	}
}

// VirtBlob returns Virt serialised as a blob.
func VirtBlob() []byte { return Build(Virt()) }
