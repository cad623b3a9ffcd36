package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/repositories"
)

// CargoRepository provides in-memory cargo storage
type CargoRepository struct {
	mu        sync.RWMutex
	cargos    []entities.Cargo
	cargosMap map[string]int
}

// NewCargoRepository creates a new in-memory cargo repository
func NewCargoRepository() *CargoRepository {
	return &CargoRepository{
		cargos:    []entities.Cargo{},
		cargosMap: make(map[string]int),
	}
}

// Verify interface compliance
var _ repositories.CargoRepository = (*CargoRepository)(nil)

// LoadCargos loads cargos into the repository
func (r *CargoRepository) LoadCargos(cargos []*entities.Cargo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range cargos {
		if c == nil {
			return fmt.Errorf("cargo cannot be nil")
		}
		if index, exists := r.cargosMap[c.ID]; exists {
			r.cargos[index] = *c
			continue
		}
		r.cargosMap[c.ID] = len(r.cargos)
		r.cargos = append(r.cargos, *c)
	}
	return nil
}

// GetCargo returns a cargo by id
func (r *CargoRepository) GetCargo(id string) (*entities.Cargo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.cargosMap[id]
	if !exists {
		return nil, fmt.Errorf("cargo %s: %w", id, repositories.ErrNotFound)
	}
	c := r.cargos[index]
	return &c, nil
}

// GetAllCargos returns all cargos in insertion order
func (r *CargoRepository) GetAllCargos() ([]*entities.Cargo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cargos := make([]*entities.Cargo, 0, len(r.cargos))
	for i := range r.cargos {
		c := r.cargos[i]
		cargos = append(cargos, &c)
	}
	return cargos, nil
}

// GetCargosByContract returns the cargos lifted against one contract
func (r *CargoRepository) GetCargosByContract(contractID string) ([]*entities.Cargo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cargos []*entities.Cargo
	for i := range r.cargos {
		if r.cargos[i].ContractID == contractID {
			c := r.cargos[i]
			cargos = append(cargos, &c)
		}
	}
	return cargos, nil
}
