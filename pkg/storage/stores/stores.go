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

package stores

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/uber/fwcore/pkg/storage"
	storage_config "github.com/uber/fwcore/pkg/storage/config"
	"github.com/uber/fwcore/pkg/storage/memstore"
	"github.com/uber/fwcore/pkg/storage/zkstore"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// CreateStore creates the store selected by cfg. The closer releases the
// backend connection.
func CreateStore(
	cfg *storage_config.Config, rootScope tally.Scope) (storage.Store, io.Closer, error) {
	scope := rootScope.SubScope("storage")
	switch cfg.Type {
	case "", storage_config.BackendMemory:
		log.Warn("Using in-memory store, state is lost on restart")
		return memstore.NewStore(scope), nopCloser{}, nil
	case storage_config.BackendZooKeeper:
		if cfg.ZooKeeper == nil {
			return nil, nil, errors.New("zookeeper storage selected without zookeeper config")
		}
		store, err := zkstore.NewStore(cfg.ZooKeeper, scope)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, errors.Errorf("unknown storage type %q", cfg.Type)
	}
}

// MustCreateStore creates the store selected by cfg and exits if it can't
// be created.
func MustCreateStore(
	cfg *storage_config.Config, rootScope tally.Scope) (storage.Store, io.Closer) {
	log.WithField("type", cfg.Type).Info("Storage config")
	store, closer, err := CreateStore(cfg, rootScope)
	if err != nil {
		log.Fatalf("Could not create store: %+v", err)
	}
	return store, closer
}
