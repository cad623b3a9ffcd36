package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/repositories"
)

// ContractRepository provides in-memory contract storage
type ContractRepository struct {
	mu           sync.RWMutex
	contracts    []entities.Contract
	contractsMap map[string]int
}

// NewContractRepository creates a new in-memory contract repository
func NewContractRepository(expectedContracts int) *ContractRepository {
	return &ContractRepository{
		contracts:    make([]entities.Contract, 0, expectedContracts),
		contractsMap: make(map[string]int, expectedContracts),
	}
}

// Verify interface compliance
var _ repositories.ContractRepository = (*ContractRepository)(nil)

// LoadContracts loads contracts into the repository
func (r *ContractRepository) LoadContracts(contracts []*entities.Contract) error {
	for _, c := range contracts {
		if err := r.SaveContract(c); err != nil {
			return err
		}
	}
	return nil
}

// SaveContract saves a contract, replacing any stored contract with the same id
func (r *ContractRepository) SaveContract(contract *entities.Contract) error {
	if contract == nil {
		return fmt.Errorf("contract cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.contractsMap[contract.ID]; exists {
		r.contracts[index] = *contract
		return nil
	}
	r.contractsMap[contract.ID] = len(r.contracts)
	r.contracts = append(r.contracts, *contract)
	return nil
}

// GetContract returns a contract by id
func (r *ContractRepository) GetContract(id string) (*entities.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.contractsMap[id]
	if !exists {
		return nil, fmt.Errorf("contract %s: %w", id, repositories.ErrNotFound)
	}
	c := r.contracts[index]
	return &c, nil
}

// GetAllContracts returns all contracts in insertion order
func (r *ContractRepository) GetAllContracts() ([]*entities.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := make([]*entities.Contract, 0, len(r.contracts))
	for i := range r.contracts {
		c := r.contracts[i]
		contracts = append(contracts, &c)
	}
	return contracts, nil
}

// CustomerRepository provides in-memory customer storage
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]entities.Customer
	order     []string
}

// NewCustomerRepository creates a new in-memory customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[string]entities.Customer),
	}
}

// Verify interface compliance
var _ repositories.CustomerRepository = (*CustomerRepository)(nil)

// LoadCustomers loads customers into the repository
func (r *CustomerRepository) LoadCustomers(customers []*entities.Customer) error {
	for _, c := range customers {
		if err := r.SaveCustomer(c); err != nil {
			return err
		}
	}
	return nil
}

// SaveCustomer saves a customer, replacing any stored customer with the same id
func (r *CustomerRepository) SaveCustomer(customer *entities.Customer) error {
	if customer == nil {
		return fmt.Errorf("customer cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.ID]; !exists {
		r.order = append(r.order, customer.ID)
	}
	r.customers[customer.ID] = *customer
	return nil
}

// GetCustomer returns a customer by id
func (r *CustomerRepository) GetCustomer(id string) (*entities.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.customers[id]
	if !exists {
		return nil, fmt.Errorf("customer %s: %w", id, repositories.ErrNotFound)
	}
	return &c, nil
}

// GetAllCustomers returns all customers in insertion order
func (r *CustomerRepository) GetAllCustomers() ([]*entities.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*entities.Customer, 0, len(r.order))
	for _, id := range r.order {
		c := r.customers[id]
		customers = append(customers, &c)
	}
	return customers, nil
}
