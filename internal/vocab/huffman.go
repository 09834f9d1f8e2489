// Huffman tree construction. Grounded on the array-based two-queue
// algorithm shared by koji-ohki-1974-word2vec/word2vec/main.go's
// CreateBinaryTree and original_source/multivec/multivec-mono.hpp's
// HuffmanNode/assignCodes pair — sort leaves by descending count, then
// repeatedly merge the two current minima (drawn from the front of
// either the leaf queue or the internal-node queue) into a new
// internal node, exactly as spec.md §4.2 describes. Only sentence-id
// entries are excluded: they are never coded since they are never
// softmax targets.
package vocab

import "math"

const hugeCount = math.MaxInt64 / 2

// BuildHuffman assigns Code and Path to every non-sentence-id entry in
// v, using entries already sorted by descending count (Build leaves
// them that way). It returns V-1, the number of internal nodes — zero
// when there are 0 or 1 leaves, per spec.md §8 scenario 2.
func BuildHuffman(v *Vocabulary) int {
	var leaves []*Entry
	for _, e := range v.entries {
		if !e.IsSentenceID {
			leaves = append(leaves, e)
		}
	}
	n := len(leaves)
	if n < 2 {
		for _, e := range leaves {
			e.Code = nil
			e.Path = nil
		}
		return 0
	}

	// count, parent and bit arrays sized for n leaves + (n-1) internal
	// nodes, indices [0,n) leaves and [n,2n-1) internal nodes, as in
	// the teacher ports' CreateBinaryTree.
	size := 2*n - 1
	count := make([]int64, size)
	parent := make([]int32, size)
	binary := make([]uint8, size)

	for i, e := range leaves {
		count[i] = int64(e.Count)
	}
	for i := n; i < size; i++ {
		count[i] = hugeCount
	}

	pos1 := n - 1
	pos2 := n
	nextInternal := n
	for a := 0; a < n-1; a++ {
		var min1, min2 int
		min1 = pickMin(count, &pos1, &pos2)
		min2 = pickMin(count, &pos1, &pos2)
		count[nextInternal] = count[min1] + count[min2]
		parent[min1] = int32(nextInternal)
		parent[min2] = int32(nextInternal)
		binary[min2] = 1
		nextInternal++
	}

	root := size - 1
	codeBuf := make([]uint8, 0, 64)
	pathBuf := make([]int32, 0, 64)
	for i, e := range leaves {
		codeBuf = codeBuf[:0]
		pathBuf = pathBuf[:0]
		node := i
		for node != root {
			codeBuf = append(codeBuf, binary[node])
			pathBuf = append(pathBuf, int32(parent[node])-int32(n))
			node = int(parent[node])
		}
		// codeBuf/pathBuf were built leaf-to-root; reverse for root-to-leaf.
		e.Code = reverseBytes(codeBuf)
		e.Path = reverseInts(pathBuf)
	}
	return n - 1
}

// pickMin pops the smaller of count[pos1] (if pos1 is still within the
// leaf queue) and count[pos2] (the internal-node queue), advancing
// whichever pointer it took from, and returns its index.
func pickMin(count []int64, pos1, pos2 *int) int {
	if *pos1 >= 0 && count[*pos1] < count[*pos2] {
		i := *pos1
		*pos1--
		return i
	}
	i := *pos2
	*pos2++
	return i
}

func reverseBytes(b []uint8) []uint8 {
	out := make([]uint8, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func reverseInts(b []int32) []int32 {
	out := make([]int32, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
