package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/accountkeeper/accounts-be/src/server/internal/avatar"
	"github.com/accountkeeper/accounts-be/src/shared/email"
)

var _ email.Dispatcher = &FakeDispatcher{}

// FakeDispatcher records dispatched verification emails instead of
// publishing them to the queue
type FakeDispatcher struct {
	mutex      sync.Mutex
	Err        error
	dispatched []email.VerificationJobParams
}

func NewFakeDispatcher() *FakeDispatcher {
	return &FakeDispatcher{}
}

func (f *FakeDispatcher) DispatchVerification(params email.VerificationJobParams) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.Err != nil {
		return f.Err
	}

	f.dispatched = append(f.dispatched, params)
	return nil
}

func (f *FakeDispatcher) Dispatched() []email.VerificationJobParams {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]email.VerificationJobParams{}, f.dispatched...)
}

var _ avatar.Resizer = FakeResizer{}

// FakeResizer stands in for image processing - it stamps the output so
// tests can tell resized content apart from the original upload
type FakeResizer struct{}

func (FakeResizer) ResizeSquare(content []byte, filename string, size int) ([]byte, error) {
	stamped := fmt.Sprintf("resized-%dx%d:", size, size)
	return append([]byte(stamped), content...), nil
}

var _ avatar.FileStore = &FakeFileStore{}

// FakeFileStore keeps written files in memory and records deletions
type FakeFileStore struct {
	mutex   sync.Mutex
	files   map[string][]byte
	deleted []string
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{
		files: map[string][]byte{},
	}
}

func (f *FakeFileStore) WriteFile(_ context.Context, relativePath string, content []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.files[relativePath] = content
	return nil
}

func (f *FakeFileStore) DeleteFile(_ context.Context, relativePath string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	delete(f.files, relativePath)
	f.deleted = append(f.deleted, relativePath)
	return nil
}

func (f *FakeFileStore) FileContent(relativePath string) ([]byte, bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	content, exists := f.files[relativePath]
	return content, exists
}

func (f *FakeFileStore) Deleted() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]string{}, f.deleted...)
}
