// Package instance drives the lifecycle of the single dev EC2 instance owned
// by the configured Owner tag.
package instance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"k8s.io/klog/v2"
)

// ErrNotFound is returned when no instance carries the owner tag. Callers
// treat this as a warning, not a failure.
var ErrNotFound = errors.New("no instance found for owner tag")

// waitTimeout bounds each stop/start polling leg.
const waitTimeout = 10 * time.Minute

type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	RebootInstances(ctx context.Context, params *ec2.RebootInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RebootInstancesOutput, error)
}

// Info is the resolved identity of the managed instance. PublicIP and
// PublicDNS are independently optional; a stopped instance has neither.
type Info struct {
	ID        string
	State     string
	PublicIP  string
	PublicDNS string
}

// Endpoint returns the address to reach the instance at, preferring the
// public DNS name over the bare IP.
func (i Info) Endpoint() string {
	if i.PublicDNS != "" {
		return i.PublicDNS
	}
	return i.PublicIP
}

type Controller struct {
	Client EC2API
	Owner  string
}

func NewController(client EC2API, owner string) *Controller {
	return &Controller{Client: client, Owner: owner}
}

// Lookup resolves the one instance tagged Owner=<owner>. Zero matches yields
// ErrNotFound; more than one match is an explicit error since the driver
// assumes a single managed instance per owner.
func (c *Controller) Lookup(ctx context.Context) (*Info, error) {
	out, err := c.Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:Owner"), Values: []string{c.Owner}},
			{Name: aws.String("instance-state-name"), Values: []string{"pending", "running", "stopping", "stopped"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("describing instances: %w", err)
	}

	var instances []types.Instance
	for _, res := range out.Reservations {
		instances = append(instances, res.Instances...)
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNotFound, c.Owner)
	}
	if len(instances) > 1 {
		return nil, fmt.Errorf("found %d instances tagged Owner=%q, expected exactly one", len(instances), c.Owner)
	}

	return infoFrom(instances[0]), nil
}

func infoFrom(inst types.Instance) *Info {
	info := &Info{ID: aws.ToString(inst.InstanceId)}
	if inst.State != nil {
		info.State = string(inst.State.Name)
	}
	info.PublicIP = aws.ToString(inst.PublicIpAddress)
	info.PublicDNS = aws.ToString(inst.PublicDnsName)
	return info
}

// Reboot issues a reboot against the located instance and returns without
// polling. The reboot either happens or it doesn't; there is no wait
// condition worth blocking on.
func (c *Controller) Reboot(ctx context.Context) (*Info, error) {
	info, err := c.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	_, err = c.Client.RebootInstances(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{info.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("rebooting %s: %w", info.ID, err)
	}
	klog.Infof("reboot issued for %s", info.ID)
	return info, nil
}

// StopStart stops the instance, waits until it is stopped, starts it again
// and waits until it is running, then re-resolves the connection info. Any
// failed step aborts the sequence; the instance may be left stopped and the
// error says so. Without an elastic IP attached the public IP and DNS are
// not stable across a stop/start cycle.
func (c *Controller) StopStart(ctx context.Context) (*Info, error) {
	info, err := c.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	klog.Infof("stopping %s", info.ID)
	if _, err := c.Client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{info.ID},
	}); err != nil {
		return nil, fmt.Errorf("stop failed for %s, instance state unchanged: %w", info.ID, err)
	}

	stopped := ec2.NewInstanceStoppedWaiter(c.Client)
	if err := stopped.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{info.ID},
	}, waitTimeout); err != nil {
		return nil, fmt.Errorf("waiting for %s to stop, instance is potentially stopped but was not started: %w", info.ID, err)
	}

	klog.Infof("starting %s", info.ID)
	if _, err := c.Client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{info.ID},
	}); err != nil {
		return nil, fmt.Errorf("start failed for %s, instance is stopped: %w", info.ID, err)
	}

	running := ec2.NewInstanceRunningWaiter(c.Client)
	if err := running.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{info.ID},
	}, waitTimeout); err != nil {
		return nil, fmt.Errorf("waiting for %s to run, instance may still be starting: %w", info.ID, err)
	}

	klog.Warning("public IP/DNS may have changed; without an elastic IP they are not stable across stop/start")
	return c.Lookup(ctx)
}
