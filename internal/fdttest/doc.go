// Package fdttest writes device tree blobs for tests.
//
// Two levels are offered. Node/Prop describe a well-formed tree that Build
// serialises:
//
//	blob := fdttest.Build(fdttest.Node{
//	    Props: []fdttest.Prop{fdttest.U32("#address-cells", 1)},
//	    Children: []fdttest.Node{{
//	        Name:  "memory@0",
//	        Props: []fdttest.Prop{fdttest.U32("reg", 0, 0x1000)},
//	    }},
//	})
//
// Stream emits raw tokens, including malformed sequences, for decoder tests:
//
//	blob := fdttest.NewStream().BeginNode("").Word(0x7).Blob()
//
// VirtBlob returns a blob shaped like the one QEMU generates for its RISC-V
// "virt" machine.
package fdttest
