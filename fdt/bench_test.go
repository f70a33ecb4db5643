package fdt_test

import (
	"testing"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/internal/fdttest"
)

func BenchmarkParse(b *testing.B) {
	blob := fdttest.VirtBlob()
	b.SetBytes(int64(len(blob)))
	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fdt.Parse(blob, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFindByPrefix(b *testing.B) {
	tree, err := fdt.Parse(fdttest.VirtBlob(), nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.FindByPrefix("virtio_mmio@"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFindByPath(b *testing.B) {
	tree, err := fdt.Parse(fdttest.VirtBlob(), nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.FindByPath("/soc/clint@2000000"); err != nil {
			b.Fatal(err)
		}
	}
}
