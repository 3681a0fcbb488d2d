// Package region provides an in-process PageMemory.
//
// A Region behaves like host memory: it starts with a number of pages, grows
// page by page up to a limit, and panics on raw access outside its size.
// Pages are allocated on first write, so a 64-bit Region can declare a huge
// size without holding the bytes.
//
//	mem := region.New[uint32](0, 16)
//	w := stablememory.NewWriter(mem, 0)
//	w.Write(data)
//
//	st := mem.Stats()
//	fmt.Println(st.Grows, st.GrowPages) // 1 [1]
//
// Regions are safe for concurrent use.
package region
