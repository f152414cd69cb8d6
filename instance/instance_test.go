package instance

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockClient "cloudrift-driver/instance/mock"
)

func describeOutput(instances ...types.Instance) *ec2.DescribeInstancesOutput {
	if len(instances) == 0 {
		return &ec2.DescribeInstancesOutput{}
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: instances}},
	}
}

func runningInstance(id, ip, dns string) types.Instance {
	return types.Instance{
		InstanceId:      aws.String(id),
		State:           &types.InstanceState{Name: types.InstanceStateNameRunning},
		PublicIpAddress: aws.String(ip),
		PublicDnsName:   aws.String(dns),
	}
}

func stateOnly(id string, state types.InstanceStateName) types.Instance {
	return types.Instance{
		InstanceId: aws.String(id),
		State:      &types.InstanceState{Name: state},
	}
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "ec2-1-2-3-4.compute.amazonaws.com", Info{PublicIP: "1.2.3.4", PublicDNS: "ec2-1-2-3-4.compute.amazonaws.com"}.Endpoint())
	assert.Equal(t, "1.2.3.4", Info{PublicIP: "1.2.3.4"}.Endpoint())
	assert.Equal(t, "", Info{}.Endpoint())
}

func TestLookup(t *testing.T) {
	type test struct {
		name    string
		owner   string
		output  *ec2.DescribeInstancesOutput
		apiErr  error
		want    *Info
		wantErr string
		miss    bool
	}
	tests := []test{
		{
			name:   "success",
			owner:  "alice",
			output: describeOutput(runningInstance("i-0abc", "1.2.3.4", "ec2-1-2-3-4.compute.amazonaws.com")),
			want: &Info{
				ID:        "i-0abc",
				State:     "running",
				PublicIP:  "1.2.3.4",
				PublicDNS: "ec2-1-2-3-4.compute.amazonaws.com",
			},
		},
		{
			name:   "no matching instance",
			owner:  "bob",
			output: describeOutput(),
			miss:   true,
		},
		{
			name:  "multiple matches are an error",
			owner: "alice",
			output: describeOutput(
				stateOnly("i-0abc", types.InstanceStateNameRunning),
				stateOnly("i-0def", types.InstanceStateNameStopped),
			),
			wantErr: "expected exactly one",
		},
		{
			name:    "api failure",
			owner:   "alice",
			apiErr:  errors.New("throttled"),
			wantErr: "describing instances",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			mock := mockClient.NewMockEC2API(ctrl)
			mock.EXPECT().
				DescribeInstances(ctx, gomock.Cond(func(x any) bool {
					input := x.(*ec2.DescribeInstancesInput)
					require.Len(t, input.Filters, 2)
					assert.Equal(t, "tag:Owner", *input.Filters[0].Name)
					assert.Equal(t, []string{tc.owner}, input.Filters[0].Values)
					return true
				}), gomock.Any()).
				Return(tc.output, tc.apiErr)

			got, err := NewController(mock, tc.owner).Lookup(ctx)
			switch {
			case tc.miss:
				require.ErrorIs(t, err, ErrNotFound)
			case tc.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestReboot(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := mockClient.NewMockEC2API(ctrl)

	mock.EXPECT().
		DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(describeOutput(runningInstance("i-0abc", "1.2.3.4", "")), nil)
	mock.EXPECT().
		RebootInstances(gomock.Any(), gomock.Cond(func(x any) bool {
			assert.Equal(t, []string{"i-0abc"}, x.(*ec2.RebootInstancesInput).InstanceIds)
			return true
		}), gomock.Any()).
		Return(&ec2.RebootInstancesOutput{}, nil)

	info, err := NewController(mock, "alice").Reboot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "i-0abc", info.ID)
}

func TestStopStart(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := mockClient.NewMockEC2API(ctrl)

	gomock.InOrder(
		// lookup
		mock.EXPECT().
			DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(describeOutput(runningInstance("i-0abc", "1.2.3.4", "old.dns")), nil),
		mock.EXPECT().
			StopInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&ec2.StopInstancesOutput{}, nil),
		// stopped waiter
		mock.EXPECT().
			DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(describeOutput(stateOnly("i-0abc", types.InstanceStateNameStopped)), nil),
		mock.EXPECT().
			StartInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&ec2.StartInstancesOutput{}, nil),
		// running waiter
		mock.EXPECT().
			DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(describeOutput(stateOnly("i-0abc", types.InstanceStateNameRunning)), nil),
		// re-resolve connection info
		mock.EXPECT().
			DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(describeOutput(runningInstance("i-0abc", "5.6.7.8", "new.dns")), nil),
	)

	info, err := NewController(mock, "alice").StopStart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5.6.7.8", info.PublicIP)
	assert.Equal(t, "new.dns", info.PublicDNS)
}

func TestStopStart_StopIssueFails(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := mockClient.NewMockEC2API(ctrl)

	mock.EXPECT().
		DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(describeOutput(runningInstance("i-0abc", "1.2.3.4", "")), nil)
	mock.EXPECT().
		StopInstances(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))
	// no StartInstances expectation: issuing start after a failed stop would
	// fail this test

	_, err := NewController(mock, "alice").StopStart(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop failed")
}

func TestStopStart_StopWaitFails(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := mockClient.NewMockEC2API(ctrl)

	gomock.InOrder(
		mock.EXPECT().
			DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(describeOutput(runningInstance("i-0abc", "1.2.3.4", "")), nil),
		mock.EXPECT().
			StopInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&ec2.StopInstancesOutput{}, nil),
		// the stopped waiter observes a terminal failure state
		mock.EXPECT().
			DescribeInstances(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(describeOutput(stateOnly("i-0abc", types.InstanceStateNameTerminated)), nil),
	)
	// StartInstances must never be issued

	_, err := NewController(mock, "alice").StopStart(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "potentially stopped but was not started")
}
