package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Listings() ListingRepository
	Addresses() AddressRepository
	Orders() OrderRepository
}
