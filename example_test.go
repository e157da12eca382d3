package hyperloglog_test

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/clarkduvall/hyperloglog"
)

// Each worker counts its own shard, the shards are merged at the end.
func Example() {
	shards := make([]*hyperloglog.HyperLogLog, 4)
	for i := range shards {
		h, err := hyperloglog.New(12)
		if err != nil {
			panic(err)
		}
		shards[i] = h
	}

	for i := range 20000 {
		shards[i%len(shards)].AddString("user_" + strconv.Itoa(i%5000))
	}

	total, _ := hyperloglog.New(12)
	for _, shard := range shards {
		if err := total.Merge(shard); err != nil {
			panic(err)
		}
	}

	est := total.Count()
	fmt.Println(est > 4500 && est < 5500)
	// Output: true
}

func ExampleHyperLogLog_Merge() {
	a, _ := hyperloglog.New(12)
	b, _ := hyperloglog.New(14)

	err := a.Merge(b)
	fmt.Println(errors.Is(err, hyperloglog.ErrIncompatibleState))
	fmt.Println(err)
	// Output:
	// true
	// hyperloglog: incompatible state: precision 12 != 14
}
