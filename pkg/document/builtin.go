package document

import (
	"strconv"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// TextComponent renders its "value" prop as text.
var TextComponent = vdom.Func("Text", func(props vdom.Props) *vdom.VNode {
	return vdom.Normalize(props.Get("value"))
})

// CounterComponent is a stateful button counting its clicks from the
// "start" prop. Its click handler is bound under "onclick".
var CounterComponent = vdom.Define("Counter", func(props vdom.Props) vdom.Component {
	c := &counter{}
	c.onClick = c.Click
	c.InitState(vdom.State{"count": intProp(props.Get("start"))})
	return c
})

type counter struct {
	vdom.Base
	onClick func() error // bound once so re-renders keep the same handler
}

func (c *counter) count() int {
	n, _ := c.State()["count"].(int)
	return n
}

// Click increments the count and re-renders.
func (c *counter) Click() error {
	return c.SetState(vdom.State{"count": c.count() + 1})
}

func (c *counter) Render() *vdom.VNode {
	label := c.Props().GetString("label")
	if label == "" {
		label = "Count"
	}
	return vdom.Button(
		vdom.Class("counter"),
		vdom.On("click", c.onClick),
		label, ": ", c.count(),
	)
}

// intProp converts a decoded number to int. Unparseable values are zero.
func intProp(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case uint64:
		return int(x)
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(x)
		return n
	}
	return 0
}
