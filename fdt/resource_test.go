package fdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/internal/fdttest"
	"github.com/joshuapare/fdtkit/pkg/types"
)

func TestResourceFor(t *testing.T) {
	tree := parseVirt(t)
	rtc := mustFind(t, tree, "/soc/rtc@101000")

	r, err := tree.ResourceFor(rtc, "reg")
	require.NoError(t, err)
	require.Equal(t, fdt.ResourceMem, r.Type)
	require.Equal(t, "google,goldfish-rtc", r.Name)
	require.Equal(t, fdt.MemRange{Addr: 0x101000, Len: 0x1000}, r.Mem)

	r, err = tree.ResourceFor(rtc, "interrupts")
	require.NoError(t, err)
	require.Equal(t, fdt.ResourceIntr, r.Type)
	require.Equal(t, uint32(11), r.IntrNo)
}

func TestResourceFor_Errors(t *testing.T) {
	tree := parseVirt(t)

	_, err := tree.ResourceFor(mustFind(t, tree, "/chosen"), "reg")
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = tree.ResourceFor(mustFind(t, tree, "/soc/uart@10000000"), "compatible")
	require.ErrorIs(t, err, types.ErrUnsupported)

	_, err = tree.ResourceFor(types.NodeID(999), "reg")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestResourceFor_NameFallsBackToUnitName(t *testing.T) {
	tree := parseVirt(t)

	r, err := tree.ResourceFor(mustFind(t, tree, "/memory@80000000"), "reg")
	require.NoError(t, err)
	require.Equal(t, "memory@80000000", r.Name)
}

func TestResourceFor_TwoCellComposition(t *testing.T) {
	tree := parseNode(t, fdttest.Node{
		Props: []fdttest.Prop{fdttest.U32("#address-cells", 2), fdttest.U32("#size-cells", 2)},
		Children: []fdttest.Node{{
			Name:  "dram@100000000",
			Props: []fdttest.Prop{fdttest.U64("reg", 0x1_0000_0000, 0x2_8000_0000)},
		}},
	})

	r, err := tree.ResourceFor(mustFind(t, tree, "/dram@100000000"), "reg")
	require.NoError(t, err)
	require.Equal(t, uint64(0x1_0000_0000), r.Mem.Addr)
	require.Equal(t, uint64(0x2_8000_0000), r.Mem.Len)
}

func TestResourceFor_OneCellWidths(t *testing.T) {
	tree := parseNode(t, fdttest.Node{
		Props: []fdttest.Prop{fdttest.U32("#address-cells", 1), fdttest.U32("#size-cells", 1)},
		Children: []fdttest.Node{{
			Name:  "sram@40000000",
			Props: []fdttest.Prop{fdttest.U32("reg", 0x40000000, 0x20000)},
		}},
	})

	r, err := tree.ResourceFor(mustFind(t, tree, "/sram@40000000"), "reg")
	require.NoError(t, err)
	require.Equal(t, fdt.MemRange{Addr: 0x40000000, Len: 0x20000}, r.Mem)
}

func TestResourceFor_UnsupportedAndCorrupt(t *testing.T) {
	tree := parseNode(t, fdttest.Node{
		Props: []fdttest.Prop{fdttest.U32("reg", 0, 0, 0, 0)},
		Children: []fdttest.Node{
			{
				Name:  "wide",
				Props: []fdttest.Prop{fdttest.U32("#address-cells", 3), fdttest.U32("#size-cells", 1)},
				Children: []fdttest.Node{{
					Name:  "dev@0",
					Props: []fdttest.Prop{fdttest.U32("reg", 0, 0, 0, 0x10)},
				}},
			},
			{Name: "short@0", Props: []fdttest.Prop{fdttest.U32("reg", 0, 0x1000, 0)}},
			{Name: "nointr", Props: []fdttest.Prop{fdttest.Empty("interrupts")}},
		},
	})

	_, err := tree.ResourceFor(0, "reg")
	require.ErrorIs(t, err, types.ErrUnsupported, "root has no parent cells")

	_, err = tree.ResourceFor(mustFind(t, tree, "/wide/dev@0"), "reg")
	require.ErrorIs(t, err, types.ErrUnsupported)

	_, err = tree.ResourceFor(mustFind(t, tree, "/short@0"), "reg")
	require.ErrorIs(t, err, types.ErrCorrupt)

	_, err = tree.ResourceFor(mustFind(t, tree, "/nointr"), "interrupts")
	require.ErrorIs(t, err, types.ErrCorrupt)
}

func TestRegs(t *testing.T) {
	tree := parseVirt(t)

	regs, err := tree.Regs(mustFind(t, tree, "/soc/flash@20000000"))
	require.NoError(t, err)
	require.Equal(t, []fdt.MemRange{
		{Addr: 0x20000000, Len: 0x2000000},
		{Addr: 0x22000000, Len: 0x2000000},
	}, regs)

	// #size-cells = 0 under /cpus.
	regs, err = tree.Regs(mustFind(t, tree, "/cpus/cpu@0"))
	require.NoError(t, err)
	require.Equal(t, []fdt.MemRange{{Addr: 0, Len: 0}}, regs)

	_, err = tree.Regs(mustFind(t, tree, "/soc"))
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestRegs_PartialTuple(t *testing.T) {
	tree := parseNode(t, fdttest.Node{
		Props: []fdttest.Prop{fdttest.U32("#address-cells", 1), fdttest.U32("#size-cells", 1)},
		Children: []fdttest.Node{{
			Name:  "dev@0",
			Props: []fdttest.Prop{fdttest.U32("reg", 0, 0x10, 0x100)},
		}},
	})
	_, err := tree.Regs(mustFind(t, tree, "/dev@0"))
	require.ErrorIs(t, err, types.ErrCorrupt)
}

func TestRanges(t *testing.T) {
	tree := parseVirt(t)

	ranges, err := tree.Ranges(mustFind(t, tree, "/soc"))
	require.NoError(t, err)
	require.Nil(t, ranges, "empty ranges is an identity mapping")

	_, err = tree.Ranges(mustFind(t, tree, "/cpus"))
	require.ErrorIs(t, err, types.ErrNotFound)

	tree = parseNode(t, fdttest.Node{
		Props: []fdttest.Prop{fdttest.U32("#address-cells", 2), fdttest.U32("#size-cells", 2)},
		Children: []fdttest.Node{{
			Name: "bus@f0000000",
			Props: []fdttest.Prop{
				fdttest.U32("#address-cells", 1),
				fdttest.U32("#size-cells", 1),
				// child 0x0 -> parent 0xf0000000, 0x100000 bytes; child 0x200000 -> parent 0x1_0000_0000
				fdttest.U32("ranges", 0x0, 0x0, 0xf0000000, 0x100000, 0x200000, 0x1, 0x0, 0x1000),
			},
		}},
	})
	ranges, err = tree.Ranges(mustFind(t, tree, "/bus@f0000000"))
	require.NoError(t, err)
	require.Equal(t, []fdt.Range{
		{Child: 0x0, Parent: 0xf0000000, Len: 0x100000},
		{Child: 0x200000, Parent: 0x1_0000_0000, Len: 0x1000},
	}, ranges)
}

func TestResourceType_String(t *testing.T) {
	require.Equal(t, "none", fdt.ResourceType(0).String())
	require.Equal(t, "mem", fdt.ResourceMem.String())
	require.Equal(t, "mem|intr", (fdt.ResourceMem | fdt.ResourceIntr).String())
}
