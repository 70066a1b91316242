// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mesos_test

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/mesos/mocks"
)

const (
	_frameworkID   = "framework-id"
	_frameworkName = "framework-name"
	_streamID      = "stream-id"
)

type schedulerDriverTestSuite struct {
	suite.Suite

	ctrl      *gomock.Controller
	store     *mocks.MockFrameworkIDStore
	caller    *mocks.MockCaller
	testScope tally.TestScope
	driver    mesos.SchedulerDriver
	ctx       context.Context
}

func (suite *schedulerDriverTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.store = mocks.NewMockFrameworkIDStore(suite.ctrl)
	suite.caller = mocks.NewMockCaller(suite.ctrl)
	suite.testScope = tally.NewTestScope("", map[string]string{})
	suite.ctx = context.Background()
	suite.driver = mesos.NewSchedulerDriver(
		&mesos.Config{
			Framework: &mesos.FrameworkConfig{
				User:            "root",
				Name:            _frameworkName,
				Roles:           []string{"svc"},
				FailoverTimeout: 3600,
				GPUSupported:    true,
			},
			ZkPath:         "zk://localhost:2181/mesos",
			RequestTimeout: time.Second,
		},
		suite.store,
		suite.caller,
		suite.testScope,
	)
}

func (suite *schedulerDriverTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func TestSchedulerDriver(t *testing.T) {
	suite.Run(t, new(schedulerDriverTestSuite))
}

func (suite *schedulerDriverTestSuite) expectFrameworkID() {
	suite.store.EXPECT().
		GetFrameworkID(gomock.Any(), _frameworkName).
		Return(_frameworkID, nil)
}

func (suite *schedulerDriverTestSuite) TestGetFrameworkIDIsCached() {
	suite.expectFrameworkID()
	suite.Equal(_frameworkID, suite.driver.GetFrameworkID(suite.ctx).GetValue())
	suite.Equal(_frameworkID, suite.driver.GetFrameworkID(suite.ctx).GetValue())
}

func (suite *schedulerDriverTestSuite) TestGetFrameworkIDEmptyOrError() {
	gomock.InOrder(
		suite.store.EXPECT().GetFrameworkID(gomock.Any(), _frameworkName).Return("", nil),
		suite.store.EXPECT().GetFrameworkID(gomock.Any(), _frameworkName).
			Return("", errors.New("zk down")),
	)
	suite.Nil(suite.driver.GetFrameworkID(suite.ctx))
	suite.Nil(suite.driver.GetFrameworkID(suite.ctx))
	suite.Equal(int64(1), suite.testScope.Snapshot().
		Counters()["driver.framework_id_load+result=fail"].Value())
}

func (suite *schedulerDriverTestSuite) TestPrepareSubscribe() {
	suite.store.EXPECT().GetFrameworkID(gomock.Any(), _frameworkName).Return("", nil)

	call := suite.driver.PrepareSubscribe(suite.ctx)
	suite.Equal(mesos.CallTypeSubscribe, call.Type)
	suite.Nil(call.FrameworkID)
	info := call.Subscribe.FrameworkInfo
	suite.Equal(_frameworkName, info.Name)
	suite.Equal("root", info.User)
	suite.Equal([]string{"svc"}, info.Roles)
	suite.Contains(info.Capabilities, &mesos.Capability{Type: "GPU_RESOURCES"})
	suite.Contains(info.Capabilities, &mesos.Capability{Type: "MULTI_ROLE"})
}

func (suite *schedulerDriverTestSuite) TestPrepareResubscribe() {
	suite.expectFrameworkID()
	call := suite.driver.PrepareSubscribe(suite.ctx)
	suite.Equal(_frameworkID, call.FrameworkID.GetValue())
	suite.Equal(_frameworkID, call.Subscribe.FrameworkInfo.ID.GetValue())
}

func (suite *schedulerDriverTestSuite) TestCallsCarryStreamAndFrameworkID() {
	suite.expectFrameworkID()
	suite.driver.PostSubscribe(suite.ctx, _streamID)
	suite.Equal(_streamID, suite.driver.GetMesosStreamID(suite.ctx))

	suite.caller.EXPECT().
		Call(gomock.Any(), _streamID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, call *mesos.Call) error {
			_, ok := ctx.Deadline()
			suite.True(ok)
			suite.Equal(mesos.CallTypeRevive, call.Type)
			suite.Equal(_frameworkID, call.FrameworkID.GetValue())
			suite.Equal([]string{"svc"}, call.Revive.Roles)
			return nil
		})
	suite.NoError(suite.driver.ReviveOffers(suite.ctx))
	suite.Equal(int64(1), suite.testScope.Snapshot().
		Counters()["driver.calls+call=REVIVE,result=success"].Value())
}

func (suite *schedulerDriverTestSuite) TestCallFailure() {
	suite.expectFrameworkID()
	suite.caller.EXPECT().
		Call(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))
	err := suite.driver.SuppressOffers(suite.ctx)
	suite.Error(err)
	suite.Contains(err.Error(), "SUPPRESS")
	suite.Equal(int64(1), suite.testScope.Snapshot().
		Counters()["driver.calls+call=SUPPRESS,result=fail"].Value())
}

func (suite *schedulerDriverTestSuite) TestNoFrameworkID() {
	suite.store.EXPECT().GetFrameworkID(gomock.Any(), _frameworkName).Return("", nil)
	suite.Error(suite.driver.KillTask(suite.ctx, &mesos.TaskID{Value: "t1"}, nil))
}

func (suite *schedulerDriverTestSuite) TestCallPayloads() {
	suite.expectFrameworkID()
	var calls []*mesos.Call
	suite.caller.EXPECT().
		Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, call *mesos.Call) error {
			calls = append(calls, call)
			return nil
		}).Times(5)

	status := &mesos.TaskStatus{
		TaskID:  &mesos.TaskID{Value: "t1"},
		AgentID: &mesos.AgentID{Value: "a1"},
		State:   mesos.TaskRunning,
		UUID:    []byte{1, 2, 3},
	}
	offerIDs := []*mesos.OfferID{{Value: "o1"}, {Value: "o2"}}

	suite.NoError(suite.driver.ReconcileTasks(suite.ctx, []*mesos.TaskStatus{status}))
	suite.NoError(suite.driver.KillTask(suite.ctx, status.TaskID, status.AgentID))
	suite.NoError(suite.driver.DeclineOffers(suite.ctx, offerIDs, mesos.FiltersFor(mesos.DeclineLong)))
	suite.NoError(suite.driver.AcceptOffers(suite.ctx, offerIDs[:1], []*mesos.Operation{
		{Type: mesos.OperationTypeUnreserve},
	}, nil))
	suite.NoError(suite.driver.Acknowledge(suite.ctx, status))

	// Empty batches and statuses without uuid are not sent.
	suite.NoError(suite.driver.DeclineOffers(suite.ctx, nil, nil))
	suite.NoError(suite.driver.AcceptOffers(suite.ctx, nil, nil, nil))
	suite.NoError(suite.driver.Acknowledge(suite.ctx, &mesos.TaskStatus{TaskID: status.TaskID}))

	suite.Require().Len(calls, 5)
	suite.Equal("t1", calls[0].Reconcile.Tasks[0].TaskID.GetValue())
	suite.Equal("a1", calls[0].Reconcile.Tasks[0].AgentID.GetValue())
	suite.Equal("t1", calls[1].Kill.TaskID.GetValue())
	suite.Equal(float64(mesos.LongDeclineSeconds), calls[2].Decline.Filters.RefuseSeconds)
	suite.Len(calls[2].Decline.OfferIDs, 2)
	suite.Equal(mesos.OperationTypeUnreserve, calls[3].Accept.Operations[0].Type)
	suite.Equal([]byte{1, 2, 3}, calls[4].Acknowledge.UUID)
}

func (suite *schedulerDriverTestSuite) TestTeardownForgetsFrameworkID() {
	gomock.InOrder(
		suite.store.EXPECT().GetFrameworkID(gomock.Any(), _frameworkName).Return(_frameworkID, nil),
		suite.store.EXPECT().GetFrameworkID(gomock.Any(), _frameworkName).Return("", nil),
	)
	suite.caller.EXPECT().Call(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	suite.NoError(suite.driver.Teardown(suite.ctx))
	suite.Nil(suite.driver.GetFrameworkID(suite.ctx))
}

func TestGetAuthHeader(t *testing.T) {
	tmpfile, err := ioutil.TempFile("", "secret")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())
	_, err = tmpfile.WriteString("test-secret\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	config := &mesos.Config{
		Framework: &mesos.FrameworkConfig{Principal: "test-principal"},
	}
	header, err := mesos.GetAuthHeader(config)
	require.NoError(t, err)
	assert.Empty(t, header.Get("Authorization"))

	config.SecretFile = tmpfile.Name()
	header, err = mesos.GetAuthHeader(config)
	require.NoError(t, err)
	assert.Equal(t, "Basic dGVzdC1wcmluY2lwYWw6dGVzdC1zZWNyZXQ=", header.Get("Authorization"))

	config.SecretFile = "/does/not/exist"
	_, err = mesos.GetAuthHeader(config)
	assert.Error(t, err)
}
