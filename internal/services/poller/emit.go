package poller

// emit offers a snapshot to the updates channel without ever blocking the
// polling loop. A slow or absent consumer drops frames, not fetches.
func (p *Poller) emit(updates chan<- Status, status Status) {
	if updates == nil {
		return
	}
	select {
	case updates <- status:
	default:
	}
}
