package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	consulapi "github.com/hashicorp/consul/api"
)

// Registration describes how the service announces itself to Consul.
type Registration struct {
	ServiceName string
	Host        string
	Port        int
	HealthPath  string
	Tags        []string
}

// Agent is the subset of the Consul agent API used for registration.
type Agent interface {
	ServiceRegister(service *consulapi.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

// Registrar registers a single service instance with Consul.
type Registrar struct {
	agent     Agent
	serviceID string
	reg       Registration
}

// NewConsulRegistrar creates a Registrar using a Consul client pointed at addr.
func NewConsulRegistrar(addr string, reg Registration) (*Registrar, error) {
	cfg := consulapi.DefaultConfig()
	cfg.Address = addr

	client, err := consulapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return NewRegistrar(client.Agent(), reg), nil
}

// NewRegistrar creates a Registrar on top of agent.
func NewRegistrar(agent Agent, reg Registration) *Registrar {
	return &Registrar{
		agent:     agent,
		serviceID: fmt.Sprintf("%s-%s", reg.ServiceName, uuid.NewString()),
		reg:       reg,
	}
}

// ServiceID returns the instance ID used for registration.
func (r *Registrar) ServiceID() string {
	return r.serviceID
}

// Register announces the instance with an HTTP health check.
func (r *Registrar) Register() error {
	healthURL := fmt.Sprintf("http://%s%s", net.JoinHostPort(r.reg.Host, strconv.Itoa(r.reg.Port)), r.reg.HealthPath)

	return r.agent.ServiceRegister(&consulapi.AgentServiceRegistration{
		ID:      r.serviceID,
		Name:    r.reg.ServiceName,
		Address: r.reg.Host,
		Port:    r.reg.Port,
		Tags:    r.reg.Tags,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           healthURL,
			Interval:                       (10 * time.Second).String(),
			Timeout:                        (2 * time.Second).String(),
			DeregisterCriticalServiceAfter: time.Minute.String(),
		},
	})
}

// Deregister removes the instance from Consul.
func (r *Registrar) Deregister() error {
	return r.agent.ServiceDeregister(r.serviceID)
}
