package bjdata_test

import (
	"fmt"

	"github.com/chaisql/bjdata"
	"github.com/chaisql/bjdata/types"
)

func Example() {
	v := types.NewObjectValue().
		Add("name", types.NewTextValue("chai")).
		Add("points", types.NewArrayValue(types.NewIntegerValue(1), types.NewIntegerValue(2)))

	data, err := bjdata.Marshal(v, bjdata.WithTypePrefix())
	if err != nil {
		panic(err)
	}
	fmt.Printf("%q\n", data)

	decoded, err := bjdata.Unmarshal(data)
	if err != nil {
		panic(err)
	}
	fmt.Println(decoded)

	// Output:
	// "{#i\x02i\x04nameSi\x04chaii\x06points[$i#i\x02\x01\x02"
	// {"name": "chai", "points": [1, 2]}
}

func ExampleUnmarshal_ndarray() {
	v, err := bjdata.Unmarshal([]byte("[$U#[i\x02i\x02]\x01\x02\x03\x04"))
	if err != nil {
		panic(err)
	}
	fmt.Println(v)

	// Output:
	// {"_ArraySize_": [2, 2], "_ArrayType_": "uint8", "_ArrayData_": [1, 2, 3, 4]}
}
