package mesh

import "sync"

// Handle is an opaque reference to an uploaded mesh. The zero Handle is
// never issued and is safe to release.
type Handle uint32

// Valid reports whether h was issued by a pool.
func (h Handle) Valid() bool {
	return h != 0
}

// Pool owns uploaded meshes for one level. Entities keep the handles and
// the level releases them on teardown.
type Pool struct {
	mu     sync.Mutex
	next   Handle
	meshes map[Handle]Mesh
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{meshes: make(map[Handle]Mesh)}
}

// Upload stores a mesh and returns its handle.
func (p *Pool) Upload(m Mesh) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.next++
	p.meshes[p.next] = m
	return p.next
}

// Get returns the mesh behind h.
func (p *Pool) Get(h Handle) (Mesh, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.meshes[h]
	return m, ok
}

// Release frees h. Releasing an unknown or already released handle is a no-op.
func (p *Pool) Release(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.meshes, h)
}

// ReleaseAll frees every handle in the pool.
func (p *Pool) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	clear(p.meshes)
}

// Len returns the number of live handles.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.meshes)
}
