package http

import "net/http"

// MachineActions routes POST /machines/{id}/{action} to the matching
// handler. Registered under the "/machines/" prefix on a ServeMux.
func MachineActions(locker MachineLocker, booker MachineBooker, releaser LockReleaser, canceller BookingCanceller) http.Handler {
	lock := HandleLockMachine(locker)
	book := HandleBookMachine(booker)
	release := HandleReleaseLock(releaser)
	cancel := HandleCancelBooking(canceller)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, action, ok := splitMachinePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		switch action {
		case "lock":
			lock.ServeHTTP(w, r)
		case "book":
			book.ServeHTTP(w, r)
		case "release":
			release.ServeHTTP(w, r)
		case "cancel":
			cancel.ServeHTTP(w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	})
}
