package dijay

// Replace registers provider under token like Register and also drops any
// singleton already cached for token, so the next resolution uses the new
// provider. Instances already handed out are unaffected.
func (c *Container) Replace(token Token, provider any, opts ...RegisterOption) error {
	if err := c.Register(token, provider, opts...); err != nil {
		return err
	}
	if c.cache.Evict(token) {
		c.logger.Debug("evicted replaced singleton", zapToken(token))
	}
	return nil
}

// ReplaceValue replaces the binding of T's type token with v.
func ReplaceValue[T any](c *Container, v T) error {
	return c.Replace(TypeOf[T](), Value(v))
}
