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

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/framework/eventclient"
	eventclient_mocks "github.com/uber/fwcore/pkg/framework/eventclient/mocks"
	"github.com/uber/fwcore/pkg/framework/mesos"
	mesos_mocks "github.com/uber/fwcore/pkg/framework/mesos/mocks"
	"github.com/uber/fwcore/pkg/framework/offerbuffer"
	"github.com/uber/fwcore/pkg/framework/revive"
	storage_mocks "github.com/uber/fwcore/pkg/storage/mocks"
)

const _frameworkName = "fwcore-test"

// fakeReconciler is a reconcile.Reconciler with a settable outcome.
type fakeReconciler struct {
	sync.Mutex
	reconciled bool
	started    int
	reconciles int
	updates    []string
}

func (f *fakeReconciler) Start(ctx context.Context) error {
	f.Lock()
	defer f.Unlock()
	f.started++
	return nil
}

func (f *fakeReconciler) Reconcile(ctx context.Context) {
	f.Lock()
	defer f.Unlock()
	f.reconciles++
}

func (f *fakeReconciler) Update(status *mesos.TaskStatus) {
	f.Lock()
	defer f.Unlock()
	f.updates = append(f.updates, status.GetTaskID().GetValue())
}

func (f *fakeReconciler) IsReconciled() bool {
	f.Lock()
	defer f.Unlock()
	return f.reconciled
}

// exitRecorder records exits instead of terminating the test binary.
type exitRecorder struct {
	sync.Mutex
	codes []ExitCode
}

func (r *exitRecorder) exit(code ExitCode, reason string) {
	r.Lock()
	defer r.Unlock()
	r.codes = append(r.codes, code)
}

func (r *exitRecorder) Codes() []ExitCode {
	r.Lock()
	defer r.Unlock()
	return append([]ExitCode(nil), r.codes...)
}

func newOffer(id string) *mesos.Offer {
	return &mesos.Offer{
		ID:       &mesos.OfferID{Value: id},
		AgentID:  &mesos.AgentID{Value: "agent-" + id},
		Hostname: "host-" + id,
	}
}

func reservedResource(name, namespace string) *mesos.Resource {
	return &mesos.Resource{
		Name:   name,
		Type:   "SCALAR",
		Scalar: &mesos.Scalar{Value: 1},
		Reservations: []*mesos.ReservationInfo{{
			Type: "DYNAMIC",
			Role: "test-role",
			Labels: &mesos.Labels{Labels: []*mesos.Label{
				{Key: "resource_id", Value: name + "-id"},
				{Key: "namespace", Value: namespace},
			}},
		}},
	}
}

func volumeResource(name, namespace string) *mesos.Resource {
	r := reservedResource(name, namespace)
	r.Disk = &mesos.DiskInfo{Persistence: &mesos.Persistence{ID: name + "-volume"}}
	return r
}

func launchOperation() *mesos.Operation {
	return &mesos.Operation{
		Type:   mesos.OperationTypeLaunch,
		Launch: &mesos.OperationLaunch{},
	}
}

type ProcessorTestSuite struct {
	suite.Suite

	ctx        context.Context
	ctrl       *gomock.Controller
	mockDriver *mesos_mocks.MockDriver
	mockClient *eventclient_mocks.MockClient
	mockStore  *storage_mocks.MockFrameworkInfoStore
	scope      tally.TestScope
	reconciler *fakeReconciler
	exits      *exitRecorder
	processor  *offerProcessor
}

func (suite *ProcessorTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDriver = mesos_mocks.NewMockDriver(suite.ctrl)
	suite.mockClient = eventclient_mocks.NewMockClient(suite.ctrl)
	suite.mockStore = storage_mocks.NewMockFrameworkInfoStore(suite.ctrl)
	suite.scope = tally.NewTestScope("", nil)
	suite.reconciler = &fakeReconciler{reconciled: true}
	suite.exits = &exitRecorder{}

	cfg := Config{OfferBufferSize: 2, OfferWait: 10 * time.Millisecond}.withDefaults()
	suite.processor = newOfferProcessor(
		cfg,
		_frameworkName,
		suite.mockDriver,
		suite.mockStore,
		suite.mockClient,
		offerbuffer.New(cfg.OfferBufferSize, suite.scope),
		NewMetrics(suite.scope),
		suite.exits.exit,
	)
	suite.processor.reconciler = suite.reconciler
	suite.processor.reviver = revive.NewController(
		suite.mockDriver, clock.NewMock(), revive.Config{}, suite.scope)
}

func (suite *ProcessorTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func TestProcessor(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func (suite *ProcessorTestSuite) counter(name string, tags ...string) int64 {
	key := name + "+"
	for i := 0; i+1 < len(tags); i += 2 {
		if i > 0 {
			key += ","
		}
		key += tags[i] + "=" + tags[i+1]
	}
	c, ok := suite.scope.Snapshot().Counters()[key]
	if !ok {
		return 0
	}
	return c.Value()
}

func (suite *ProcessorTestSuite) expectDecline(policy mesos.DeclinePolicy, offers ...*mesos.Offer) *gomock.Call {
	return suite.mockDriver.EXPECT().
		DeclineOffers(gomock.Any(), mesos.OfferIDs(offers), mesos.FiltersFor(policy))
}

// TestNotReconciledDeclinesShort tests that offers are declined briefly
// while reconciliation is in progress and the client is not consulted.
func (suite *ProcessorTestSuite) TestNotReconciledDeclinesShort() {
	suite.reconciler.reconciled = false
	offers := []*mesos.Offer{newOffer("o1"), newOffer("o2")}
	suite.expectDecline(mesos.DeclineShort, offers...).Return(nil)

	suite.processor.process(suite.ctx, offers)

	suite.Equal(1, suite.reconciler.reconciles)
	suite.Equal(int64(2), suite.counter("offers.declined", "policy", "short", "result", "success"))
}

// TestRunningAcceptsAndDeclinesLong tests the regular evaluation of a
// batch: recommendations are accepted and the rest declined long.
func (suite *ProcessorTestSuite) TestRunningAcceptsAndDeclinesLong() {
	o1, o2 := newOffer("o1"), newOffer("o2")
	op := launchOperation()
	gomock.InOrder(
		suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusRunning),
		suite.mockClient.EXPECT().Offers(gomock.Any(), []*mesos.Offer{o1, o2}).
			Return(eventclient.ProcessedOffers([]eventclient.OfferRecommendation{
				{Offer: o1, Operation: op},
			})),
		suite.mockClient.EXPECT().GetUnexpectedResources(gomock.Any(), []*mesos.Offer{o2}).
			Return(eventclient.ProcessedUnexpectedResources(nil)),
		suite.expectDecline(mesos.DeclineLong, o2).Return(nil),
		suite.mockDriver.EXPECT().AcceptOffers(
			gomock.Any(),
			[]*mesos.OfferID{o1.ID},
			[]*mesos.Operation{op},
			mesos.FiltersFor(mesos.DeclineShort),
		).Return(nil),
		suite.mockClient.EXPECT().PendingWork().Return(nil),
		suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil),
	)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1, o2})

	suite.Equal(int64(1), suite.counter("offers.accepted", "result", "success"))
	suite.Equal(int64(1), suite.counter("offers.operations"))
	suite.Equal(int64(1), suite.counter("offers.declined", "policy", "long", "result", "success"))
}

// TestEmptyBatchStillEvaluated tests that the client sees empty batches so
// that it can make progress, and that nothing is declined.
func (suite *ProcessorTestSuite) TestEmptyBatchStillEvaluated() {
	suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusReserving)
	suite.mockClient.EXPECT().Offers(gomock.Any(), gomock.Len(0)).
		Return(eventclient.ProcessedOffers(nil))
	suite.mockClient.EXPECT().PendingWork().
		Return([]revive.WorkItem{{Name: "pod-0"}})
	suite.mockDriver.EXPECT().ReviveOffers(gomock.Any()).Return(nil)

	suite.processor.process(suite.ctx, nil)
}

// TestNotReadyDeclinesShort tests that offers are declined briefly when the
// client could not evaluate them.
func (suite *ProcessorTestSuite) TestNotReadyDeclinesShort() {
	o1 := newOffer("o1")
	suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusRunning)
	suite.mockClient.EXPECT().Offers(gomock.Any(), gomock.Any()).
		Return(eventclient.NotReadyOffers(nil))
	suite.mockClient.EXPECT().GetUnexpectedResources(gomock.Any(), []*mesos.Offer{o1}).
		Return(eventclient.ProcessedUnexpectedResources(nil))
	suite.expectDecline(mesos.DeclineShort, o1).Return(nil)
	suite.mockClient.EXPECT().PendingWork().Return(nil)
	suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1})
}

// TestCleanupDestroysBeforeUnreserving tests that unexpected resources are
// released with every DESTROY ahead of every UNRESERVE, and that a failed
// cleanup shortens the decline of the remaining offers.
func (suite *ProcessorTestSuite) TestCleanupDestroysBeforeUnreserving() {
	o1, o2 := newOffer("o1"), newOffer("o2")
	cpu := reservedResource("cpus", "svc")
	vol := volumeResource("disk", "svc")

	suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusRunning)
	suite.mockClient.EXPECT().Offers(gomock.Any(), gomock.Any()).
		Return(eventclient.ProcessedOffers(nil))
	suite.mockClient.EXPECT().GetUnexpectedResources(gomock.Any(), []*mesos.Offer{o1, o2}).
		Return(eventclient.FailedUnexpectedResources([]eventclient.OfferResources{
			{Offer: o2, Resources: []*mesos.Resource{cpu, vol}},
		}))
	suite.expectDecline(mesos.DeclineShort, o1).Return(nil)
	suite.mockDriver.EXPECT().AcceptOffers(
		gomock.Any(),
		[]*mesos.OfferID{o2.ID},
		[]*mesos.Operation{
			{Type: mesos.OperationTypeDestroy, Destroy: &mesos.OperationVolumes{Volumes: []*mesos.Resource{vol}}},
			{Type: mesos.OperationTypeUnreserve, Unreserve: &mesos.OperationResources{Resources: []*mesos.Resource{cpu}}},
			{Type: mesos.OperationTypeUnreserve, Unreserve: &mesos.OperationResources{Resources: []*mesos.Resource{vol}}},
		},
		gomock.Any(),
	).Return(nil)
	suite.mockClient.EXPECT().PendingWork().Return(nil)
	suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1, o2})

	suite.Equal(int64(3), suite.counter("offers.cleanup_operations"))
}

// TestAcceptErrorsDoNotStopOtherOffers tests that a failed accept is
// counted and the other offers are still accepted.
func (suite *ProcessorTestSuite) TestAcceptErrorsDoNotStopOtherOffers() {
	o1, o2 := newOffer("o1"), newOffer("o2")
	suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusRunning)
	suite.mockClient.EXPECT().Offers(gomock.Any(), gomock.Any()).
		Return(eventclient.ProcessedOffers([]eventclient.OfferRecommendation{
			{Offer: o1, Operation: launchOperation()},
			{Offer: o2, Operation: launchOperation()},
		}))
	gomock.InOrder(
		suite.mockDriver.EXPECT().AcceptOffers(gomock.Any(), []*mesos.OfferID{o1.ID}, gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused")),
		suite.mockDriver.EXPECT().AcceptOffers(gomock.Any(), []*mesos.OfferID{o2.ID}, gomock.Any(), gomock.Any()).
			Return(nil),
	)
	suite.mockClient.EXPECT().PendingWork().Return(nil)
	suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1, o2})

	suite.Equal(int64(1), suite.counter("offers.accepted", "result", "fail"))
	suite.Equal(int64(1), suite.counter("offers.accepted", "result", "success"))
}

// TestFinishedDeclinesLongAndSuppresses tests the idle client path.
func (suite *ProcessorTestSuite) TestFinishedDeclinesLongAndSuppresses() {
	o1 := newOffer("o1")
	suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusFinished).Times(2)
	suite.expectDecline(mesos.DeclineLong, o1).Return(nil)
	suite.mockDriver.EXPECT().SuppressOffers(gomock.Any()).Return(nil).Times(1)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1})
	suite.processor.process(suite.ctx, nil)

	suite.True(suite.processor.reviver.IsSuppressed())
	suite.Equal(int64(2), suite.counter("client_finished"))
}

// TestUninstalled tests that the framework is torn down once and that
// later offers are dropped without reaching the client.
func (suite *ProcessorTestSuite) TestUninstalled() {
	o1, o2 := newOffer("o1"), newOffer("o2")
	gomock.InOrder(
		suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusUninstalled),
		suite.mockDriver.EXPECT().Teardown(gomock.Any()).Return(nil),
		suite.mockStore.EXPECT().ClearFrameworkID(gomock.Any(), _frameworkName).Return(nil),
		suite.mockClient.EXPECT().Unregistered(),
	)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1})
	suite.processor.process(suite.ctx, []*mesos.Offer{o2})
	suite.processor.enqueue(suite.ctx, []*mesos.Offer{newOffer("o3")})

	suite.True(suite.processor.uninstalled.Load())
	suite.Equal(int64(3), suite.counter("offers.dropped"))
	suite.Equal(0, suite.processor.buffer.Len())
}

// TestTeardownFailureRetried tests that a failed teardown is retried on
// the next tick.
func (suite *ProcessorTestSuite) TestTeardownFailureRetried() {
	o1 := newOffer("o1")
	gomock.InOrder(
		suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusUninstalled),
		suite.mockDriver.EXPECT().Teardown(gomock.Any()).Return(errors.New("timeout")),
		suite.expectDecline(mesos.DeclineShort, o1).Return(nil),
		suite.mockClient.EXPECT().GetClientStatus().Return(eventclient.StatusUninstalled),
		suite.mockDriver.EXPECT().Teardown(gomock.Any()).Return(nil),
		suite.mockStore.EXPECT().ClearFrameworkID(gomock.Any(), _frameworkName).
			Return(errors.New("zk down")),
		suite.mockClient.EXPECT().Unregistered(),
	)

	suite.processor.process(suite.ctx, []*mesos.Offer{o1})
	suite.False(suite.processor.uninstalled.Load())
	suite.processor.process(suite.ctx, nil)
	suite.True(suite.processor.uninstalled.Load())
	suite.Equal(int64(1), suite.counter("teardown", "result", "fail"))
}

// TestEnqueueOverflowDeclinesShort tests that offers beyond the buffer
// capacity are declined right away.
func (suite *ProcessorTestSuite) TestEnqueueOverflowDeclinesShort() {
	o1, o2, o3 := newOffer("o1"), newOffer("o2"), newOffer("o3")
	suite.expectDecline(mesos.DeclineShort, o3).Return(nil)

	suite.processor.enqueue(suite.ctx, []*mesos.Offer{o1, o2, o3})

	suite.Equal(2, suite.processor.buffer.Len())
	suite.Equal(2, suite.processor.inProgressCount())
	suite.Equal(int64(1), suite.counter("offers.overflow"))
}

// TestRescind tests that a rescinded offer leaves the buffer and is no
// longer in progress.
func (suite *ProcessorTestSuite) TestRescind() {
	o1, o2 := newOffer("o1"), newOffer("o2")
	suite.processor.enqueue(suite.ctx, []*mesos.Offer{o1, o2})

	suite.processor.rescind(o1.ID)
	suite.processor.rescind(&mesos.OfferID{Value: "missing"})

	suite.Equal(1, suite.processor.buffer.Len())
	suite.Equal(1, suite.processor.inProgressCount())
	suite.Equal(int64(1), suite.counter("offers.rescind_missed"))
}

// TestTickClearsInProgress tests that a tick marks its batch processed.
func (suite *ProcessorTestSuite) TestTickClearsInProgress() {
	o1 := newOffer("o1")
	suite.reconciler.reconciled = false
	suite.expectDecline(mesos.DeclineShort, o1).Return(nil)

	suite.processor.enqueue(suite.ctx, []*mesos.Offer{o1})
	suite.Error(suite.processor.awaitOffersProcessed(20 * time.Millisecond))

	suite.True(suite.processor.tick(suite.ctx))
	suite.NoError(suite.processor.awaitOffersProcessed(time.Second))
	suite.Equal(int64(1), suite.counter("ticks"))
}

// TestTickPanicExits tests that a failure of the processing loop exits the
// process.
func (suite *ProcessorTestSuite) TestTickPanicExits() {
	suite.mockClient.EXPECT().GetClientStatus().DoAndReturn(func() eventclient.ClientStatus {
		panic("client bug")
	})

	suite.False(suite.processor.tick(suite.ctx))

	suite.Equal([]ExitCode{ExitProcessingFailure}, suite.exits.Codes())
	suite.Equal(int64(1), suite.counter("tick_panics"))
}

// TestStartStop tests the loop lifecycle.
func (suite *ProcessorTestSuite) TestStartStop() {
	suite.reconciler.reconciled = false

	suite.processor.stop()
	suite.processor.start(suite.reconciler, suite.processor.reviver)
	suite.processor.start(suite.reconciler, suite.processor.reviver)
	suite.Eventually(func() bool {
		suite.reconciler.Lock()
		defer suite.reconciler.Unlock()
		return suite.reconciler.reconciles > 0
	}, time.Second, 5*time.Millisecond)
	suite.processor.stop()
	suite.processor.stop()
}
