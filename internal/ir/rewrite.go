package ir

// ReplaceOperand rewrites every occurrence of oldVal among user's operand
// slots (an instruction's payload arguments, or a phi's argument list) to
// newVal, and registers user in newVal's user set. This is the primitive
// try_remove_trivial_phi (irbuilder, C10) uses to "rewire every user of the
// phi's result to reference `same` instead".
func (f *Function) ReplaceOperand(user, oldVal, newVal Index) {
	switch user.Kind() {
	case KindInstruction:
		h := f.InstrHeader(user)
		off := h.PayloadOffset
		if h.HasResult() {
			off++
		}
		for i := uint32(0); i < uint32(h.VariadicCount); i++ {
			if f.payload.Get(off+i) == oldVal {
				f.payload.Set(off+i, newVal)
			}
		}
	case KindPhi:
		p := f.Phi(user)
		raw := f.small.Get(p.Args)
		for i, v := range raw {
			if Index(v) == oldVal {
				raw[i] = uint32(newVal)
			}
		}
	}
	f.AddUser(newVal, user)
}
