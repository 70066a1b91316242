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

package revive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	mesos_mocks "github.com/uber/fwcore/pkg/framework/mesos/mocks"
)

type ControllerTestSuite struct {
	suite.Suite

	ctx        context.Context
	ctrl       *gomock.Controller
	mockDriver *mesos_mocks.MockDriver
	clock      *clock.Mock
	scope      tally.TestScope
	controller *Controller
}

func (suite *ControllerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDriver = mesos_mocks.NewMockDriver(suite.ctrl)
	suite.clock = clock.NewMock()
	suite.scope = tally.NewTestScope("", nil)
	suite.controller = NewController(suite.mockDriver, suite.clock, Config{}, suite.scope)
}

func (suite *ControllerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func TestController(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (suite *ControllerTestSuite) counter(name string) int64 {
	c, ok := suite.scope.Snapshot().Counters()[name]
	if !ok {
		return 0
	}
	return c.Value()
}

func (suite *ControllerTestSuite) TestReviveOnlyWhenWorkAppears() {
	gomock.InOrder(
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
	)

	steps := []struct {
		items   []WorkItem
		revived bool
	}{
		{nil, false},
		{[]WorkItem{_itemA}, true},
		{[]WorkItem{_itemA}, false},
		{[]WorkItem{_itemA, _itemB}, true},
		{nil, false},
	}
	for i, step := range steps {
		suite.Equal(step.revived, suite.controller.Tick(suite.ctx, step.items), "step %d", i)
		suite.clock.Add(10 * time.Second)
	}

	suite.Equal(int64(2), suite.counter("revive.revive+result=success"))
	suite.Equal(int64(2), suite.counter("revive.new_work_items+"))
	suite.True(suite.controller.IsSuppressed())
}

func (suite *ControllerTestSuite) TestThrottledReviveIsRetried() {
	suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil).Times(2)

	suite.True(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))

	// B shows up within the minimum spacing.
	suite.clock.Add(time.Second)
	suite.False(suite.controller.Tick(suite.ctx, []WorkItem{_itemA, _itemB}))
	suite.Equal(int64(1), suite.counter("revive.revive_throttled+"))

	// B is still pending once the spacing elapsed.
	suite.clock.Add(5 * time.Second)
	suite.True(suite.controller.Tick(suite.ctx, []WorkItem{_itemA, _itemB}))
}

func (suite *ControllerTestSuite) TestThrottledWorkThatDisappearsIsDropped() {
	suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil)

	suite.True(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
	suite.False(suite.controller.Tick(suite.ctx, []WorkItem{_itemA, _itemB}))

	suite.clock.Add(10 * time.Second)
	suite.False(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
}

func (suite *ControllerTestSuite) TestFailedReviveIsRetried() {
	gomock.InOrder(
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(errors.New("master gone")),
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil),
	)

	suite.False(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
	suite.clock.Add(5 * time.Second)
	suite.True(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
	suite.Equal(int64(1), suite.counter("revive.revive+result=fail"))
}

func (suite *ControllerTestSuite) TestSuppressOnceUntilRevived() {
	gomock.InOrder(
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
	)

	suite.controller.Tick(suite.ctx, nil)
	suite.controller.Tick(suite.ctx, nil)
	suite.controller.Suppress(suite.ctx)
	suite.True(suite.controller.IsSuppressed())

	suite.NoError(suite.controller.Revive(suite.ctx))
	suite.False(suite.controller.IsSuppressed())

	suite.controller.Tick(suite.ctx, nil)
	suite.Equal(int64(2), suite.counter("revive.suppress+result=success"))
}

func (suite *ControllerTestSuite) TestSuppressFailureIsRetried() {
	gomock.InOrder(
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(errors.New("timeout")),
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
	)
	suite.controller.Tick(suite.ctx, nil)
	suite.False(suite.controller.IsSuppressed())
	suite.controller.Tick(suite.ctx, nil)
	suite.True(suite.controller.IsSuppressed())
}

func (suite *ControllerTestSuite) TestSuppressionDisabled() {
	controller := NewController(
		suite.mockDriver, suite.clock, Config{DisableSuppression: true}, suite.scope)
	controller.Tick(suite.ctx, nil)
	controller.Tick(suite.ctx, nil)
	suite.False(controller.IsSuppressed())
}

func (suite *ControllerTestSuite) TestReviveError() {
	suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(errors.New("master gone"))
	suite.Error(suite.controller.Revive(suite.ctx))
}

func (suite *ControllerTestSuite) TestPendingWorkRevivedAfterSuppress() {
	gomock.InOrder(
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
		suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil),
	)

	suite.True(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
	suite.controller.Suppress(suite.ctx)
	suite.True(suite.controller.IsSuppressed())

	suite.clock.Add(time.Minute)
	suite.True(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
	suite.False(suite.controller.IsSuppressed())

	for i := 0; i < 3; i++ {
		suite.clock.Add(time.Minute)
		suite.False(suite.controller.Tick(suite.ctx, []WorkItem{_itemA}))
	}
	suite.Equal(int64(2), suite.counter("revive.revive+result=success"))
}
