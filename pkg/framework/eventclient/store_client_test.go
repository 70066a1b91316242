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

package eventclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/eventclient"
	"github.com/uber/fwcore/pkg/framework/mesos"
	"github.com/uber/fwcore/pkg/framework/revive"
	"github.com/uber/fwcore/pkg/storage/memstore"
	store_mocks "github.com/uber/fwcore/pkg/storage/mocks"
)

type StoreClientTestSuite struct {
	suite.Suite

	ctx    context.Context
	store  *memstore.Store
	client *eventclient.StoreClient
}

func (suite *StoreClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memstore.NewStore(tally.NoopScope)
	suite.client = eventclient.NewStoreClient("hello", suite.store)
}

func TestStoreClient(t *testing.T) {
	suite.Run(t, new(StoreClientTestSuite))
}

func taskStatus(id string, state mesos.TaskState) *mesos.TaskStatus {
	return &mesos.TaskStatus{
		TaskID: &mesos.TaskID{Value: id},
		State:  state,
	}
}

func (suite *StoreClientTestSuite) TestUnknownTask() {
	result := suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskRunning))
	suite.Equal(eventclient.TaskUnknown, result.Outcome())
}

func (suite *StoreClientTestSuite) TestKnownTaskLifecycle() {
	suite.Require().NoError(suite.store.StoreTaskStatus(suite.ctx, taskStatus("t1", mesos.TaskStaging)))

	result := suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskRunning))
	suite.Equal(eventclient.TaskStatusProcessed, result.Outcome())
	stored, err := suite.store.GetTaskStatus(suite.ctx, "t1")
	suite.NoError(err)
	suite.Equal(mesos.TaskRunning, stored.GetState())
	suite.Empty(suite.client.PendingWork())

	// A failed task waits for a relaunch.
	suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskFailed))
	suite.Equal([]revive.WorkItem{
		{Name: "t1", RecoveryType: eventclient.RecoveryTransient},
	}, suite.client.PendingWork())

	suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskRunning))
	suite.Empty(suite.client.PendingWork())

	// A finished task is forgotten.
	suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskFinished))
	stored, err = suite.store.GetTaskStatus(suite.ctx, "t1")
	suite.NoError(err)
	suite.Nil(stored)
	suite.Equal(eventclient.TaskUnknown,
		suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskRunning)).Outcome())
}

func (suite *StoreClientTestSuite) TestStoreErrorIsNotUnknown() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()
	store := store_mocks.NewMockTaskStatusStore(ctrl)
	client := eventclient.NewStoreClient("hello", store)

	store.EXPECT().GetTaskStatus(gomock.Any(), "t1").Return(nil, errors.New("zk down"))
	suite.Equal(eventclient.TaskStatusProcessed,
		client.Status(suite.ctx, taskStatus("t1", mesos.TaskRunning)).Outcome())
}

func (suite *StoreClientTestSuite) TestOffersAndResources() {
	offers := []*mesos.Offer{{ID: &mesos.OfferID{Value: "o1"}}}
	suite.client.Registered(false)
	suite.Equal(eventclient.StatusRunning, suite.client.GetClientStatus())

	result := suite.client.Offers(suite.ctx, offers)
	suite.Equal(eventclient.OfferProcessed, result.Outcome())
	suite.Empty(result.Recommendations())

	unexpected := suite.client.GetUnexpectedResources(suite.ctx, offers)
	suite.Equal(eventclient.UnexpectedResourcesProcessed, unexpected.Outcome())
	suite.Empty(unexpected.OfferResources())
	suite.client.Unregistered()
}

func (suite *StoreClientTestSuite) TestPendingEndpoint() {
	suite.Require().NoError(suite.store.StoreTaskStatus(suite.ctx, taskStatus("t1", mesos.TaskRunning)))
	suite.client.Status(suite.ctx, taskStatus("t1", mesos.TaskLost))

	resources := suite.client.HTTPResources()
	suite.Require().Len(resources, 1)
	endpoint, ok := resources[0].(eventclient.Endpoint)
	suite.Require().True(ok)
	suite.Equal("/v1/hello/pending", endpoint.Path)

	rec := httptest.NewRecorder()
	endpoint.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, endpoint.Path, nil))
	suite.Equal(http.StatusOK, rec.Code)

	var items []revive.WorkItem
	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	suite.Equal([]revive.WorkItem{{Name: "t1", RecoveryType: eventclient.RecoveryTransient}}, items)
}
