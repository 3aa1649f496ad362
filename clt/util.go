package clt

import "log"

//HandleError aborts the program on a non-nil error. It belongs at the
//program boundary; the library itself returns recoverable errors.
func HandleError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
