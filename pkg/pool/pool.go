package pool

// DefaultMaxBlocks and DefaultBlockSize give the 50*16 = 800 byte pool size
// from the original engine.
const (
	DefaultMaxBlocks = 50
	DefaultBlockSize = 16
)

// Pool is a fixed-capacity, first-fit byte arena: a single preallocated
// backing array partitioned into MaxBlocks blocks of BlockSize bytes, plus a
// bounded set of TxFrame descriptors pointing into it. Capacity is fixed at
// construction; running out of contiguous blocks is a normal outcome, not
// an error — the caller silently drops the frame.
type Pool struct {
	blockSize int
	maxBlocks int

	buf      []byte
	blockUse []bool

	descriptors []TxFrame
	descUsed    []bool

	order []int // slot indices, insertion order
}

// New creates a Pool with the given capacity.
func New(maxBlocks, blockSize int) *Pool {
	return &Pool{
		blockSize:   blockSize,
		maxBlocks:   maxBlocks,
		buf:         make([]byte, maxBlocks*blockSize),
		blockUse:    make([]bool, maxBlocks),
		descriptors: make([]TxFrame, maxBlocks),
		descUsed:    make([]bool, maxBlocks),
		order:       make([]int, 0, maxBlocks),
	}
}

// NewDefault creates a Pool sized 50 blocks x 16 bytes, matching the
// original engine's default.
func NewDefault() *Pool {
	return New(DefaultMaxBlocks, DefaultBlockSize)
}

// Len returns the number of live frames currently in the pool.
func (p *Pool) Len() int {
	return len(p.order)
}

// Add copies data into the pool and returns a pointer to its descriptor.
// The second return value is false, with a nil descriptor, iff no
// contiguous run of free blocks was large enough — the caller is expected
// to silently drop the frame in that case.
func (p *Pool) Add(data []byte) (*TxFrame, bool) {
	blocksNeeded := (len(data) + p.blockSize - 1) / p.blockSize
	if blocksNeeded == 0 {
		blocksNeeded = 1
	}

	start := p.findFreeRun(blocksNeeded)
	if start < 0 {
		return nil, false
	}

	slot := p.findFreeSlot()
	if slot < 0 {
		return nil, false
	}

	for i := 0; i < blocksNeeded; i++ {
		p.blockUse[start+i] = true
	}

	offset := start * p.blockSize
	copy(p.buf[offset:offset+len(data)], data)

	p.descriptors[slot] = TxFrame{
		data:       p.buf[offset : offset+len(data) : offset+len(data)],
		blockStart: start,
		blocksUsed: blocksNeeded,
		slot:       slot,
	}
	p.descUsed[slot] = true
	p.order = append(p.order, slot)

	return &p.descriptors[slot], true
}

// Remove frees f's blocks and descriptor slot. It is a no-op if f does not
// belong to this pool or was already removed.
func (p *Pool) Remove(f *TxFrame) {
	if f == nil || f.slot < 0 || f.slot >= p.maxBlocks || !p.descUsed[f.slot] {
		return
	}
	if &p.descriptors[f.slot] != f {
		return
	}

	for i := 0; i < f.blocksUsed; i++ {
		p.blockUse[f.blockStart+i] = false
	}
	p.descUsed[f.slot] = false

	for i, s := range p.order {
		if s == f.slot {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Frames returns the live frame descriptors in insertion order. The
// returned slice aliases pool-internal storage only transiently; callers
// must not retain it across a subsequent Add or Remove.
func (p *Pool) Frames() []*TxFrame {
	out := make([]*TxFrame, len(p.order))
	for i, slot := range p.order {
		out[i] = &p.descriptors[slot]
	}
	return out
}

// Each calls fn for every live frame in insertion order, stopping early if
// fn returns false. Unlike Frames, Each allocates nothing, so the MAC
// engine's hot-path scans use it instead.
func (p *Pool) Each(fn func(*TxFrame) bool) {
	for _, slot := range p.order {
		if !fn(&p.descriptors[slot]) {
			return
		}
	}
}

func (p *Pool) findFreeRun(blocksNeeded int) int {
	if blocksNeeded > p.maxBlocks {
		return -1
	}
	for i := 0; i <= p.maxBlocks-blocksNeeded; i++ {
		ok := true
		for j := 0; j < blocksNeeded; j++ {
			if p.blockUse[i+j] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

func (p *Pool) findFreeSlot() int {
	for i, used := range p.descUsed {
		if !used {
			return i
		}
	}
	return -1
}
